package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"salestream/internal/models"
)

// AMQP publishes events to a RabbitMQ queue. The connection is dialed
// lazily and dropped on any publish error, so the next emit retries a
// fresh dial instead of reusing a broken channel.
type AMQP struct {
	url   string
	queue string

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQP(url, queue string) *AMQP {
	return &AMQP{url: url, queue: queue}
}

func (a *AMQP) ensure() error {
	if a.ch != nil {
		return nil
	}
	conn, err := amqp.Dial(a.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(a.queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("amqp queue declare: %w", err)
	}
	a.conn, a.ch = conn, ch
	return nil
}

func (a *AMQP) drop() {
	if a.ch != nil {
		a.ch.Close()
	}
	if a.conn != nil {
		a.conn.Close()
	}
	a.conn, a.ch = nil, nil
}

func (a *AMQP) Emit(ctx context.Context, ev models.Event) error {
	if err := a.ensure(); err != nil {
		return err
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("amqp: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.ch.PublishWithContext(ctx, "", a.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   ev.OrderID,
		Timestamp:   ev.Timestamp.Time(),
		Body:        b,
	}); err != nil {
		a.drop()
		return fmt.Errorf("amqp publish %s: %w", ev.OrderID, err)
	}
	return nil
}

func (a *AMQP) Close() error {
	a.drop()
	return nil
}
