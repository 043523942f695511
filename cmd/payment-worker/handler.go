package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderproc/internal/messages"
	"orderproc/internal/payment"
	"orderproc/internal/worker"
)

type handler struct {
	processor *payment.Processor
	logger    *slog.Logger
}

func (h *handler) HandleMessage(ctx context.Context, msg amqp.Delivery) error {
	var order messages.Order
	if err := json.Unmarshal(msg.Body, &order); err != nil {
		return worker.Permanent(fmt.Errorf("decode order event: %w", err))
	}

	h.logger.Info("Received order for payment processing", "order_id", order.OrderID)

	_, err := h.processor.Process(ctx, order.OrderID)
	if errors.Is(err, payment.ErrAlreadyProcessed) {
		// Redelivery of an order that was already decided; the earlier
		// result stands, so the message is done.
		h.logger.Info("Skipping already processed order", "order_id", order.OrderID)
		return nil
	}
	if err != nil {
		return worker.Retryable(err)
	}

	return nil
}
