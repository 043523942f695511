package payment

import (
	"math/rand"

	"github.com/google/uuid"
)

// Decider decides whether payment for an order succeeds. The message is
// empty on success and explains the failure otherwise.
type Decider interface {
	Decide(orderID uuid.UUID) (success bool, message string)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(orderID uuid.UUID) (bool, string)

func (f DeciderFunc) Decide(orderID uuid.UUID) (bool, string) {
	return f(orderID)
}

// RandomDecider approves half of all payments at random. It stands in
// for a real authorization call.
func RandomDecider() Decider {
	return DeciderFunc(func(uuid.UUID) (bool, string) {
		if rand.Intn(2) == 0 {
			return true, ""
		}
		return false, "Simulated payment failure."
	})
}
