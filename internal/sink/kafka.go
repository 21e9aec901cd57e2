package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"salestream/internal/models"
)

// Kafka publishes events to a topic, keyed by order id so all events of
// one order land on the same partition in emission order. Writes are
// single-attempt with a bounded timeout: a dead broker slows one emit,
// it never stalls generation.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  1,
		WriteTimeout: 5 * time.Second,
		BatchSize:    1,
	}}
}

func (k *Kafka) Emit(ctx context.Context, ev models.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: b,
	}); err != nil {
		return fmt.Errorf("kafka publish %s: %w", ev.OrderID, err)
	}
	return nil
}

func (k *Kafka) Close() error { return k.writer.Close() }
