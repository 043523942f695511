package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderproc/internal/messages"
	"orderproc/internal/notify"
	"orderproc/internal/worker"
)

type handler struct {
	sink   notify.Sink
	logger *slog.Logger
}

func (h *handler) HandleMessage(ctx context.Context, msg amqp.Delivery) error {
	var result messages.PaymentResult
	if err := json.Unmarshal(msg.Body, &result); err != nil {
		return worker.Permanent(fmt.Errorf("decode payment result: %w", err))
	}

	n := notify.Notification{
		OrderID: result.OrderID,
		Message: notify.Format(result),
	}

	if err := h.sink.Send(ctx, n); err != nil {
		return worker.Retryable(fmt.Errorf("send notification for order %s: %w", result.OrderID, err))
	}

	return nil
}
