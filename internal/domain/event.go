package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecommendationEvent records one served recommendation list for analytics.
type RecommendationEvent struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"session_id,omitempty"`
	Preferences UserPreferences `json:"preferences"`
	Limit       int             `json:"limit"`
	Results     []RankedStation `json:"results"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RankedStation is the compact form of a Recommendation carried in events.
type RankedStation struct {
	StationID string    `json:"station_id"`
	Score     int       `json:"score"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// NewRecommendationEvent builds an event for a served list, stamping it with
// a fresh ID and the package clock.
func NewRecommendationEvent(sessionID string, prefs UserPreferences, limit int, recs []Recommendation) RecommendationEvent {
	results := make([]RankedStation, len(recs))
	for i, r := range recs {
		results[i] = RankedStation{
			StationID: r.Station.ID,
			Score:     r.Score,
			RiskLevel: r.Station.RiskLevel,
		}
	}
	return RecommendationEvent{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Preferences: prefs,
		Limit:       limit,
		Results:     results,
		CreatedAt:   clock.Now().UTC(),
	}
}

// sessionKey carries the questionnaire session ID through a Recommend call.
type sessionKey struct{}

// WithSessionID attaches a questionnaire session ID to ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionIDFromContext returns the session ID set by WithSessionID, if any.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
