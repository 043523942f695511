package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"orderproc/internal/messages"
	"orderproc/internal/models"
	"orderproc/internal/worker"
)

type orderStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}

type handler struct {
	orders orderStore
	logger *slog.Logger
}

func (h *handler) HandleMessage(ctx context.Context, msg amqp.Delivery) error {
	var result messages.PaymentResult
	if err := json.Unmarshal(msg.Body, &result); err != nil {
		return worker.Permanent(fmt.Errorf("decode payment result: %w", err))
	}

	order, err := h.orders.Get(ctx, result.OrderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Unknown order id counts as handled; redelivery cannot
			// make the order appear.
			h.logger.Warn("Order not found for payment result", "order_id", result.OrderID)
			return nil
		}
		return worker.Retryable(fmt.Errorf("fetch order %s: %w", result.OrderID, err))
	}

	status := models.StatusPaid
	if !result.Success {
		status = models.StatusPaymentFailed
	}

	if order.Status == status {
		h.logger.Info("Order already in target status", "order_id", order.ID, "order_status", status)
		return nil
	}
	if !models.CanTransition(order.Status, status) {
		h.logger.Warn("Ignoring illegal status transition",
			"order_id", order.ID, "from", order.Status, "to", status)
		return nil
	}

	if err := h.orders.UpdateStatus(ctx, order.ID, status); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.logger.Warn("Order disappeared before status update", "order_id", order.ID)
			return nil
		}
		return worker.Retryable(fmt.Errorf("update order %s: %w", order.ID, err))
	}

	h.logger.Info("Order status updated", "order_id", order.ID, "order_status", status)
	return nil
}
