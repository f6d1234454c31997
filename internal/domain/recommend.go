package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// DefaultLimit is the number of recommendations shown after a questionnaire.
const DefaultLimit = 4

// ErrInvalidLimit is returned for a negative result limit.
var ErrInvalidLimit = errors.New("limit must not be negative")

// Recommendation pairs a station with its match score and explanation.
type Recommendation struct {
	Station Station `json:"station"`
	Score   int     `json:"score"`
	Reason  string  `json:"reason"`
}

// Recommender ranks catalog stations against a completed preference set.
type Recommender interface {
	Recommend(ctx context.Context, prefs UserPreferences, limit int) ([]Recommendation, error)
}

// Recommend scores every station, sorts by descending score and returns the
// first limit entries. The sort is stable: stations with equal scores keep
// their catalog order. A zero limit yields an empty, non-nil result.
//
// The input slice is never modified.
func Recommend(stations []Station, prefs UserPreferences, limit int) ([]Recommendation, error) {
	if err := prefs.Check(); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	if limit < 0 {
		return nil, fmt.Errorf("recommend: %w: %d", ErrInvalidLimit, limit)
	}

	ranked := make([]Recommendation, len(stations))
	for i, s := range stations {
		ranked[i] = Recommendation{
			Station: s,
			Score:   ComputeScore(s, prefs),
			Reason:  GenerateReason(s, prefs),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
