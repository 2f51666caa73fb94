package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/metrics"
	"github.com/segmentio/kafka-go"
)

// Publisher errors
var (
	ErrPublisherClosed = errors.New("publisher is closed")
	ErrSerializeFailed = errors.New("failed to serialize alert event")
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes alert events to a Kafka topic, keyed by metric id so
// alerts for one metric stay ordered within a partition.
type KafkaPublisher struct {
	writer MessageWriter
	closed atomic.Bool
}

// NewKafkaPublisher creates a synchronous producer for topic.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic is required")
	}

	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // Partition by key
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
	}), nil
}

// NewKafkaPublisherWithWriter wraps an existing writer.
func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish sends events as one batch.
func (p *KafkaPublisher) Publish(ctx context.Context, events []AlertEvent) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}
	if len(events) == 0 {
		return nil
	}

	log := logger.WithComponent("alert_publisher")
	start := time.Now()

	messages := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			metrics.AlertPublishTotal.WithLabelValues("failed").Inc()
			return fmt.Errorf("%w: %v", ErrSerializeFailed, err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(ev.MetricID),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(ev.ID.String())},
				{Key: "alert_kind", Value: []byte(ev.Kind)},
			},
			Time: ev.EmittedAt,
		})
	}

	err := p.writer.WriteMessages(ctx, messages...)
	duration := time.Since(start)
	metrics.AlertPublishDuration.Observe(duration.Seconds())

	if err != nil {
		log.Error().
			Err(err).
			Int("batch_size", len(messages)).
			Dur("duration", duration).
			Msg("failed to publish alerts to kafka")
		metrics.AlertPublishTotal.WithLabelValues("failed").Add(float64(len(messages)))
		return err
	}

	log.Debug().
		Int("batch_size", len(messages)).
		Dur("duration", duration).
		Msg("alerts published to kafka")
	metrics.AlertPublishTotal.WithLabelValues("success").Add(float64(len(messages)))
	return nil
}

// Close flushes and closes the underlying writer. It is safe to call twice.
func (p *KafkaPublisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}
