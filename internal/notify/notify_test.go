package notify

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"orderproc/internal/messages"
)

func TestFormatSuccess(t *testing.T) {
	orderID := uuid.New()
	got := Format(messages.PaymentResult{OrderID: orderID, Success: true})
	assert.Equal(t, fmt.Sprintf("Payment for Order %s was successful.", orderID), got)
}

func TestFormatFailure(t *testing.T) {
	orderID := uuid.New()
	got := Format(messages.PaymentResult{OrderID: orderID, Success: false, Message: "card declined"})
	assert.Equal(t, fmt.Sprintf("Payment for Order %s failed: card declined", orderID), got)
}
