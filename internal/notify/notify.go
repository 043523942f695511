// Package notify formats payment outcomes into human-readable
// notifications and hands them to a delivery sink.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"orderproc/internal/messages"
)

// Notification is a formatted message for one order's payment outcome.
type Notification struct {
	OrderID uuid.UUID
	Message string
}

// Sink receives formatted notifications. A real deployment swaps in an
// email or SMS sender behind this interface.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// Format renders the customer-facing text for a payment result.
func Format(result messages.PaymentResult) string {
	if result.Success {
		return fmt.Sprintf("Payment for Order %s was successful.", result.OrderID)
	}
	return fmt.Sprintf("Payment for Order %s failed: %s", result.OrderID, result.Message)
}

// LogSink writes notifications to the log.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Send(_ context.Context, n Notification) error {
	s.Logger.Info("Sending Notification", "order_id", n.OrderID, "message", n.Message)
	return nil
}
