//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/indyradio-service/internal/adapter/kafka"
	"github.com/couchcryptid/indyradio-service/internal/catalog"
	"github.com/couchcryptid/indyradio-service/internal/config"
	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/observability"
	"github.com/couchcryptid/indyradio-service/internal/pipeline"
	"github.com/couchcryptid/indyradio-service/internal/recommender"
	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "test-recommendations"

// publishedMessage holds a deserialized message read from the topic.
type publishedMessage struct {
	Event   domain.RecommendationEvent
	Key     string
	Headers map[string]string
}

// readPublished reads a single message from the consumer and deserializes it.
func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.RecommendationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event), "unmarshal message")

	return publishedMessage{
		Event:   event,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

func newConsumer(t *testing.T, broker, group string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestKafkaWriter verifies that kafka.Writer publishes a recommendation event
// with the expected key, headers, and body.
func TestKafkaWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	event := domain.RecommendationEvent{
		ID:        "evt-1",
		SessionID: "sess-1",
		Preferences: domain.UserPreferences{
			Priority:     domain.PriorityLocalNews,
			Geography:    domain.GeographyLocal,
			Contribution: domain.ContributionOneTime,
			Impact:       domain.ImpactInvestigative,
		},
		Limit:     1,
		Results:   []domain.RankedStation{{StationID: "kpbx", Score: 90, RiskLevel: domain.RiskCritical}},
		CreatedAt: time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, writer.LoadBatch(ctx, []domain.RecommendationEvent{event}))

	pm := readPublished(ctx, t, newConsumer(t, broker, "test-writer"))
	assert.Equal(t, "sess-1", pm.Key)
	assert.Equal(t, kafka.EventType, pm.Headers["event_type"])
	assert.Equal(t, "evt-1", pm.Headers["event_id"])
	assert.Equal(t, "2025-05-01T10:00:00Z", pm.Headers["created_at"])
	assert.Equal(t, event, pm.Event)
}

// TestPipelineEndToEnd wires Engine → Publisher → Pipeline → Writer with real
// Kafka and verifies that every served list arrives as an event.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(writer, discardLogger(), metrics, 10, 200*time.Millisecond)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	c, err := catalog.Load()
	require.NoError(t, err)
	engine := recommender.NewEngine(c, discardLogger(), metrics)
	cached, err := recommender.NewCachedRecommender(engine, 16, metrics)
	require.NoError(t, err)
	rec := recommender.NewPublisher(cached, p, discardLogger(), metrics)

	// Every priority/geography pair once, each in its own session.
	var sent int
	for _, priority := range domain.AnswerValues(domain.FieldPriority) {
		for _, geography := range domain.AnswerValues(domain.FieldGeography) {
			prefs := domain.UserPreferences{
				Priority:     domain.Priority(priority),
				Geography:    domain.Geography(geography),
				Contribution: domain.ContributionMonthly,
				Impact:       domain.ImpactSaveStation,
			}
			sessionCtx := domain.WithSessionID(ctx, fmt.Sprintf("sess-%d", sent))
			recs, err := rec.Recommend(sessionCtx, prefs, domain.DefaultLimit)
			require.NoError(t, err)
			require.Len(t, recs, domain.DefaultLimit)
			sent++
		}
	}

	consumer := newConsumer(t, broker, "test-e2e")
	received := make(map[string]publishedMessage, sent)
	for len(received) < sent {
		pm := readPublished(ctx, t, consumer)
		received[pm.Key] = pm
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	for key, pm := range received {
		assert.Equal(t, key, pm.Event.SessionID)
		assert.Equal(t, kafka.EventType, pm.Headers["event_type"])
		assert.Len(t, pm.Event.Results, domain.DefaultLimit)
		assert.Equal(t, domain.ImpactSaveStation, pm.Event.Preferences.Impact)
		for i := 1; i < len(pm.Event.Results); i++ {
			assert.GreaterOrEqual(t, pm.Event.Results[i-1].Score, pm.Event.Results[i].Score)
		}
	}

	// Emergency services with no geographic preference: KPBX tops the list.
	var found bool
	for _, pm := range received {
		prefs := pm.Event.Preferences
		if prefs.Priority != domain.PriorityEmergencyServices || prefs.Geography != domain.GeographyNoPreference {
			continue
		}
		found = true
		assert.Equal(t, domain.RankedStation{StationID: "kpbx", Score: 95, RiskLevel: domain.RiskCritical}, pm.Event.Results[0])
	}
	assert.True(t, found, "expected the emergency-services/no-preference event")
}
