package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer interface {
	Publish(ctx context.Context, batch []Entry) error
	Close() error
}

// KafkaProducer writes audit batches to a Kafka topic, keyed by entry id.
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 100 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, batch []Entry) error {
	messages := make([]kafka.Message, len(batch))
	for i, entry := range batch {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal audit entry %s: %w", entry.ID, err)
		}
		messages[i] = kafka.Message{
			Key:   []byte(entry.ID.String()),
			Value: payload,
		}
	}
	return p.writer.WriteMessages(ctx, messages...)
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// ConsoleProducer logs audit batches locally. It is the fallback when no
// Kafka brokers are configured, so the CLI keeps working offline.
type ConsoleProducer struct {
	logger *zap.Logger
}

func NewConsoleProducer(logger *zap.Logger) *ConsoleProducer {
	return &ConsoleProducer{logger: logger}
}

func (p *ConsoleProducer) Publish(_ context.Context, batch []Entry) error {
	for _, entry := range batch {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal audit entry %s: %w", entry.ID, err)
		}
		p.logger.Info("audit", zap.ByteString("entry", payload))
	}
	return nil
}

func (p *ConsoleProducer) Close() error { return nil }
