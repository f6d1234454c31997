package kafka

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/indyradio-service/internal/config"
	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(sessionID string) domain.RecommendationEvent {
	return domain.RecommendationEvent{
		ID:        "evt-1",
		SessionID: sessionID,
		Preferences: domain.UserPreferences{
			Priority:     domain.PriorityEmergencyServices,
			Geography:    domain.GeographyNoPreference,
			Contribution: domain.ContributionEmergency,
			Impact:       domain.ImpactSaveStation,
		},
		Limit: 4,
		Results: []domain.RankedStation{
			{StationID: "kpbx", Score: 95, RiskLevel: domain.RiskCritical},
		},
		CreatedAt: time.Date(2025, 4, 26, 15, 10, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	event := sampleEvent("sess-9")

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("sess-9"), msg.Key)
	assert.Contains(t, string(msg.Value), `"session_id":"sess-9"`)
	assert.Contains(t, string(msg.Value), `"station_id":"kpbx"`)
	assert.Contains(t, string(msg.Value), `"priority":"emergency-services"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte(EventType), msg.Headers[0].Value)
	assert.Equal(t, "event_id", msg.Headers[1].Key)
	assert.Equal(t, []byte("evt-1"), msg.Headers[1].Value)
	assert.Equal(t, "created_at", msg.Headers[2].Key)
	assert.Equal(t, []byte("2025-04-26T15:10:00Z"), msg.Headers[2].Value)
}

func TestSerializeToMessage_KeyFallsBackToEventID(t *testing.T) {
	msg, err := serializeToMessage(sampleEvent(""))
	require.NoError(t, err)

	assert.Equal(t, []byte("evt-1"), msg.Key)
	assert.NotContains(t, string(msg.Value), "session_id")
}

func TestNewWriter_UsesConfiguredTopic(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "recs"}
	w := NewWriter(cfg, slog.Default())
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "recs", w.writer.Topic)
}

func TestLoadBatch_EmptyIsNoop(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "recs"}
	w := NewWriter(cfg, slog.Default())
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.LoadBatch(context.Background(), nil))
}
