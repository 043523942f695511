// Package messages defines the event payloads exchanged between services.
//
// The JSON field names are the wire contract shared by every participant
// and must not change. There is no envelope metadata; the order id inside
// the payload is the message identity.
package messages

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderproc/internal/models"
)

func init() {
	// Amounts go on the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Order is the OrderCreated event published to the order exchange.
type Order struct {
	OrderID     uuid.UUID          `json:"OrderId"`
	CustomerID  string             `json:"CustomerId"`
	TotalAmount decimal.Decimal    `json:"TotalAmount"`
	Status      models.OrderStatus `json:"Status"`
}

// PaymentResult is published to the payment exchange once per order.
// Message is populated only when Success is false.
type PaymentResult struct {
	OrderID uuid.UUID `json:"OrderId"`
	Success bool      `json:"Success"`
	Message string    `json:"Message,omitempty"`
}

// FromModel converts a persisted order into its event shape.
func FromModel(order *models.Order) Order {
	return Order{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	}
}
