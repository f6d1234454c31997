// Package recommender serves ranked station recommendations over a catalog.
// The Engine does the ranking; CachedRecommender and Publisher decorate any
// domain.Recommender with memoization and event emission.
package recommender

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/indyradio-service/internal/catalog"
	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/observability"
)

// Engine ranks the stations of a single catalog.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewEngine binds the recommender to a catalog.
func NewEngine(c *catalog.Catalog, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{catalog: c, logger: logger, metrics: metrics}
}

// Recommend ranks the catalog for prefs and returns at most limit entries.
func (e *Engine) Recommend(_ context.Context, prefs domain.UserPreferences, limit int) ([]domain.Recommendation, error) {
	recs, err := domain.Recommend(e.catalog.Stations(), prefs, limit)
	if err != nil {
		reason := errorReason(err)
		e.metrics.RecommendationErrors.WithLabelValues(reason).Inc()
		e.logger.Debug("recommendation rejected", "reason", reason, "error", err)
		return nil, err
	}
	return recs, nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrIncompletePreferences):
		return "incomplete"
	case errors.Is(err, domain.ErrInvalidLimit):
		return "invalid_limit"
	default:
		return "invalid"
	}
}
