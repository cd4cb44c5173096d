// internal/dispatch/kafka.go
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sales-hunter-workers/internal/models"

	"github.com/segmentio/kafka-go"
)

const SinkKafka = "kafka"

// MessageWriter is the subset of *kafka.Writer used by KafkaSink.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes alerts keyed by tenant so one tenant's alerts stay ordered on a partition.
type KafkaSink struct {
	writer MessageWriter
}

// NewKafkaWriter builds a writer that waits for all in-sync replicas.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Compression:  kafka.Gzip,
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func NewKafkaSink(writer MessageWriter) *KafkaSink {
	return &KafkaSink{writer: writer}
}

func (s *KafkaSink) Name() string { return SinkKafka }

func (s *KafkaSink) Deliver(ctx context.Context, tenantID string, alerts []models.GeneratedAlert) error {
	msgs := make([]kafka.Message, 0, len(alerts))
	for _, alert := range alerts {
		value, err := json.Marshal(alert)
		if err != nil {
			return fmt.Errorf("marshal alert %s: %w", alert.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(tenantID),
			Value: value,
			Headers: []kafka.Header{
				{Key: "alert-id", Value: []byte(alert.ID)},
				{Key: "severity", Value: []byte(alert.Severity)},
			},
		})
	}

	if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d alert messages: %w", len(msgs), err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
