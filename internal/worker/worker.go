// Package worker provides a generic worker that consumes messages from a queue.
package worker

import (
	"context"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderproc/internal/broker"
)

// Handlerer is an interface for handling messages. A nil return
// acknowledges the delivery; see errors.go for the failure dispositions.
type Handlerer interface {
	HandleMessage(ctx context.Context, msg amqp.Delivery) error
}

// Worker consumes messages from one queue with manual acknowledgement.
type Worker struct {
	queueName string
	broker    *broker.Broker
	logger    *slog.Logger
}

func New(queueName string, broker *broker.Broker, logger *slog.Logger) *Worker {
	return &Worker{
		queueName: queueName,
		broker:    broker,
		logger:    logger,
	}
}

// Run consumes until ctx is cancelled or the delivery channel closes.
// An in-flight handler always finishes and its acknowledgement is sent
// before Run returns.
func (w *Worker) Run(ctx context.Context, handler Handlerer) error {
	msgs, err := w.broker.Consume(w.queueName)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Shutting down worker...", "queue", w.queueName)
				return
			case msg, ok := <-msgs:
				if !ok {
					w.logger.Info("Delivery channel closed, shutting down.", "queue", w.queueName)
					return
				}
				w.dispatch(ctx, handler, msg)
			}
		}
	}()

	w.logger.Info("Waiting for messages.", "queue", w.queueName)
	wg.Wait()
	w.logger.Info("Worker shutdown complete.", "queue", w.queueName)
	return nil
}

// dispatch runs the handler and settles the delivery: ack on success,
// nack with requeue for retryable errors, nack without requeue otherwise.
func (w *Worker) dispatch(ctx context.Context, handler Handlerer, msg amqp.Delivery) {
	err := handler.HandleMessage(ctx, msg)
	switch {
	case err == nil:
		if err := msg.Ack(false); err != nil {
			w.logger.Error("Failed to ack message", "queue", w.queueName, "error", err)
		}
	case IsRetryable(err):
		w.logger.Warn("Retryable error handling message, requeueing", "queue", w.queueName, "error", err)
		if err := msg.Nack(false, true); err != nil {
			w.logger.Error("Failed to nack message", "queue", w.queueName, "error", err)
		}
	default:
		w.logger.Error("Error handling message, dropping", "queue", w.queueName, "error", err)
		if err := msg.Nack(false, false); err != nil {
			w.logger.Error("Failed to nack message", "queue", w.queueName, "error", err)
		}
	}
}
