// Package broker provides a wrapper around the amqp client.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderproc/internal/config"
)

// ErrNotConnected is returned when publishing on a broker whose channel
// was never opened or has been closed.
var ErrNotConnected = errors.New("broker: channel not initialized")

// Broker owns one connection and one channel, used for both publishing
// and consuming. Each process constructs its own Broker and passes it to
// the components that need it.
type Broker struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

func New(cfg config.RabbitMQ, logger *slog.Logger) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Broker{
		conn:   conn,
		ch:     ch,
		logger: logger,
	}, nil
}

// Publish publishes a persistent JSON message to an exchange with an
// empty routing key (fanout semantics ignore it). mandatory is set so
// the broker reports unroutable messages.
func (b *Broker) Publish(ctx context.Context, exchange string, body []byte) error {
	if b == nil || b.ch == nil {
		return ErrNotConnected
	}

	err := b.ch.PublishWithContext(ctx,
		exchange, // exchange
		"",       // routing key
		true,     // mandatory
		false,    // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", exchange, err)
	}

	b.logger.Debug("Published message", "exchange", exchange, "bytes", len(body))
	return nil
}

// Consume registers a manual-acknowledgement consumer on a queue.
func (b *Broker) Consume(queueName string) (<-chan amqp.Delivery, error) {
	if b == nil || b.ch == nil {
		return nil, ErrNotConnected
	}

	d, err := b.ch.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return nil, fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	return d, nil
}

// Close closes the channel then the connection, best-effort.
func (b *Broker) Close() {
	if b == nil {
		return
	}
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		_ = b.conn.Close()
	}
}
