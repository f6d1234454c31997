package questionnaire

import (
	"time"

	"github.com/couchcryptid/indyradio-service/internal/domain"
)

// Session tracks one listener's progress through the questionnaire. It
// replaces scattered view state with a single value the API threads through
// requests. Sessions are owned by a Store and not safe for concurrent use on
// their own.
type Session struct {
	id        string
	answers   domain.PreferencesBuilder
	createdAt time.Time
	updatedAt time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{id: id, createdAt: now, updatedAt: now}
}

// Answer records a value for one question.
func (s *Session) Answer(f domain.Field, value string, now time.Time) error {
	if _, err := stepOf(f); err != nil {
		return err
	}
	if err := s.answers.Set(f, value); err != nil {
		return err
	}
	s.updatedAt = now
	return nil
}

// Step is the index of the first unanswered question, or Count() once every
// question has an answer.
func (s *Session) Step() int {
	for i, q := range questions {
		if !s.answers.Answered(q.Field) {
			return i
		}
	}
	return len(questions)
}

// Progress reports how many questions have an answer out of the total.
func (s *Session) Progress() (answered, total int) {
	for _, q := range questions {
		if s.answers.Answered(q.Field) {
			answered++
		}
	}
	return answered, len(questions)
}

// Preferences returns the completed answers or domain.ErrIncompletePreferences.
func (s *Session) Preferences() (domain.UserPreferences, error) {
	return s.answers.Build()
}

// View is a read-only snapshot of a session for API responses.
type View struct {
	ID        string                  `json:"id"`
	Step      int                     `json:"step"`
	Answered  int                     `json:"answered"`
	Total     int                     `json:"total"`
	Complete  bool                    `json:"complete"`
	Answers   map[domain.Field]string `json:"answers"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	ExpiresAt time.Time               `json:"expires_at"`
}

func (s *Session) view(ttl time.Duration) View {
	answered, total := s.Progress()
	return View{
		ID:        s.id,
		Step:      s.Step(),
		Answered:  answered,
		Total:     total,
		Complete:  s.answers.Complete(),
		Answers:   s.answers.Answers(),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
		ExpiresAt: s.updatedAt.Add(ttl),
	}
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(s.updatedAt.Add(ttl))
}
