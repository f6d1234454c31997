package recommender

import (
	"context"
	"fmt"
	"strconv"

	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedRecommender wraps a Recommender with an in-memory LRU cache keyed by
// the preference set and limit. Rankings are deterministic for a fixed
// catalog, so entries never go stale.
type CachedRecommender struct {
	inner   domain.Recommender
	cache   *lru.Cache[string, []domain.Recommendation]
	metrics *observability.Metrics
}

// NewCachedRecommender creates a cache decorator holding at most maxEntries
// ranked lists.
func NewCachedRecommender(inner domain.Recommender, maxEntries int, metrics *observability.Metrics) (*CachedRecommender, error) {
	cache, err := lru.New[string, []domain.Recommendation](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("recommendation cache: %w", err)
	}
	return &CachedRecommender{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}, nil
}

func (c *CachedRecommender) Recommend(ctx context.Context, prefs domain.UserPreferences, limit int) ([]domain.Recommendation, error) {
	key := prefs.Key() + "#" + strconv.Itoa(limit)
	if recs, ok := c.cache.Get(key); ok {
		c.metrics.RecommendationCache.WithLabelValues("hit").Inc()
		return cloneRecommendations(recs), nil
	}
	c.metrics.RecommendationCache.WithLabelValues("miss").Inc()

	recs, err := c.inner.Recommend(ctx, prefs, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, cloneRecommendations(recs))
	return recs, nil
}

// Len returns the number of cached rankings.
func (c *CachedRecommender) Len() int {
	return c.cache.Len()
}

// cloneRecommendations deep-copies a ranked list, station slices included,
// so no caller can alter a cached entry.
func cloneRecommendations(recs []domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, len(recs))
	for i, r := range recs {
		r.Station = r.Station.Clone()
		out[i] = r
	}
	return out
}
