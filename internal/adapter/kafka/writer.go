package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/indyradio-service/internal/config"
	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
)

// EventType is the event_type header on every recommendation message.
const EventType = "recommendation.served"

// Writer produces recommendation events to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes a batch of events in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, events []domain.RecommendationEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d recommendation events: %w", len(msgs), err)
	}
	w.logger.Debug("recommendation events written", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an event into a Kafka message. Events from the
// same questionnaire session share a key so they land on one partition in order.
func serializeToMessage(event domain.RecommendationEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize recommendation event: %w", err)
	}
	key := event.SessionID
	if key == "" {
		key = event.ID
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(EventType)},
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "created_at", Value: []byte(event.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
