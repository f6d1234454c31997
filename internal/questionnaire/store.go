package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Store keeps questionnaire sessions in memory. A session expires ttl after
// its last answer.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewStore creates an empty store. Pass clockwork.NewRealClock() outside tests.
func NewStore(ttl time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Create starts a new session.
func (s *Store) Create() View {
	now := s.clock.Now().UTC()
	sess := newSession(uuid.NewString(), now)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	active := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SessionsCreated.Inc()
	s.metrics.SessionsActive.Set(float64(active))
	return sess.view(s.ttl)
}

// Get returns a snapshot of the session.
func (s *Store) Get(id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return View{}, err
	}
	return sess.view(s.ttl), nil
}

// Answer records one answer and returns the updated snapshot.
func (s *Store) Answer(id string, f domain.Field, value string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return View{}, err
	}
	if err := sess.Answer(f, value, s.clock.Now().UTC()); err != nil {
		return View{}, err
	}
	return sess.view(s.ttl), nil
}

// Preferences returns the completed preferences of a session.
func (s *Store) Preferences(id string) (domain.UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return domain.UserPreferences{}, err
	}
	return sess.Preferences()
}

// Delete discards a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	s.metrics.SessionsActive.Set(float64(len(s.sessions)))
	return nil
}

// Len returns the number of sessions held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.expired(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.metrics.SessionsExpired.Add(float64(removed))
		s.metrics.SessionsActive.Set(float64(len(s.sessions)))
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("expired questionnaire sessions removed", "count", n)
			}
		}
	}
}

// lookupLocked returns a live session. Expired sessions are removed on access.
func (s *Store) lookupLocked(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	if sess.expired(s.clock.Now(), s.ttl) {
		delete(s.sessions, id)
		s.metrics.SessionsExpired.Inc()
		s.metrics.SessionsActive.Set(float64(len(s.sessions)))
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return sess, nil
}
