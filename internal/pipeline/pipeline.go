package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
	drainTimeout   = 5 * time.Second
)

// BatchLoader writes multiple recommendation events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.RecommendationEvent) error
}

// Pipeline buffers recommendation events and loads them in batches.
// Publish is safe for concurrent use; Run must be called once.
type Pipeline struct {
	loader        BatchLoader
	logger        *slog.Logger
	metrics       *observability.Metrics
	clock         clockwork.Clock
	events        chan domain.RecommendationEvent
	batchSize     int
	flushInterval time.Duration
	running       atomic.Bool

	// mu orders Publish against the final drain; closed is set once Run exits.
	mu     sync.RWMutex
	closed bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the time source for flush ticks and retry backoff.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithBufferSize sets how many events may wait for a flush before Publish
// starts dropping them. The default is four batches.
func WithBufferSize(n int) Option {
	return func(p *Pipeline) { p.events = make(chan domain.RecommendationEvent, n) }
}

// New creates a Pipeline that flushes every batchSize events or every
// flushInterval, whichever comes first.
func New(l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int, flushInterval time.Duration, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:        l,
		logger:        logger,
		metrics:       metrics,
		clock:         clockwork.NewRealClock(),
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.events == nil {
		p.events = make(chan domain.RecommendationEvent, batchSize*4)
	}
	return p
}

// Publish queues an event without blocking. It returns false and counts a
// drop when the buffer is full or Run has already returned.
func (p *Pipeline) Publish(event domain.RecommendationEvent) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.metrics.EventsDropped.Inc()
		return false
	}
	select {
	case p.events <- event:
		p.metrics.EventsPublished.Inc()
		return true
	default:
		p.metrics.EventsDropped.Inc()
		return false
	}
}

// CheckReadiness returns nil while the batch loop is running.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.running.Load() {
		return errors.New("event pipeline is not running")
	}
	return nil
}

// Run executes the batch loop until the context is cancelled. Events still
// buffered at shutdown get one final load attempt.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize, "flush_interval", p.flushInterval)
	p.running.Store(true)
	p.metrics.PipelineRunning.Set(1)
	defer func() {
		p.running.Store(false)
		p.metrics.PipelineRunning.Set(0)
	}()

	ticker := p.clock.NewTicker(p.flushInterval)
	defer ticker.Stop()

	batch := make([]domain.RecommendationEvent, 0, p.batchSize)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			p.drain(ctx, batch)
			return nil
		case event := <-p.events:
			batch = append(batch, event)
			if len(batch) < p.batchSize {
				continue
			}
		case <-ticker.Chan():
			if len(batch) == 0 {
				continue
			}
		}

		if !p.flush(ctx, batch) {
			p.drain(ctx, batch)
			return nil
		}
		batch = batch[:0]
	}
}

// flush loads the batch, retrying with exponential backoff until it succeeds.
// Returns false if the context was cancelled first.
func (p *Pipeline) flush(ctx context.Context, batch []domain.RecommendationEvent) bool {
	backoff := initialBackoff
	for {
		if p.load(ctx, batch) == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		if !sleepWithContext(ctx, p.clock, backoff) {
			return false
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
}

func (p *Pipeline) load(ctx context.Context, batch []domain.RecommendationEvent) error {
	start := p.clock.Now()
	if err := p.loader.LoadBatch(ctx, batch); err != nil {
		p.metrics.LoadErrors.Inc()
		p.logger.Error("load batch failed", "error", err, "batch_size", len(batch))
		return err
	}
	p.metrics.BatchSize.Observe(float64(len(batch)))
	p.metrics.EventsLoaded.Add(float64(len(batch)))
	p.metrics.BatchProcessingDuration.Observe(p.clock.Since(start).Seconds())
	return nil
}

// drain stops accepting events, then makes a single bounded attempt to load
// the pending batch plus anything still queued.
func (p *Pipeline) drain(ctx context.Context, batch []domain.RecommendationEvent) {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	for len(p.events) > 0 {
		batch = append(batch, <-p.events)
	}
	if len(batch) == 0 {
		return
	}

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()
	if err := p.load(drainCtx, batch); err != nil {
		p.logger.Warn("pending events lost at shutdown", "count", len(batch))
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
