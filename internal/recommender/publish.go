package recommender

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/observability"
)

// EventSink accepts recommendation events. Publish must not block.
type EventSink interface {
	Publish(event domain.RecommendationEvent) bool
}

// Publisher records every served list in metrics and forwards it to an
// EventSink. A nil sink only records metrics.
type Publisher struct {
	inner   domain.Recommender
	sink    EventSink
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher wraps inner so that each successful call emits an event.
func NewPublisher(inner domain.Recommender, sink EventSink, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	return &Publisher{inner: inner, sink: sink, logger: logger, metrics: metrics}
}

func (p *Publisher) Recommend(ctx context.Context, prefs domain.UserPreferences, limit int) ([]domain.Recommendation, error) {
	recs, err := p.inner.Recommend(ctx, prefs, limit)
	if err != nil {
		return nil, err
	}

	p.metrics.RecommendationsServed.Inc()
	for _, r := range recs {
		p.metrics.RecommendationScore.Observe(float64(r.Score))
	}

	if p.sink != nil {
		event := domain.NewRecommendationEvent(domain.SessionIDFromContext(ctx), prefs, limit, recs)
		if !p.sink.Publish(event) {
			p.logger.Warn("recommendation event dropped", "event_id", event.ID, "session_id", event.SessionID)
		}
	}
	return recs, nil
}
