package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending       OrderStatus = "Pending"
	StatusCreated       OrderStatus = "Created"
	StatusPaid          OrderStatus = "Paid"
	StatusPaymentFailed OrderStatus = "PaymentFailed"
	StatusShipped       OrderStatus = "Shipped"
)

// transitions holds the legal moves of the order state machine:
// Pending -> Created -> (Paid | PaymentFailed), Shipped only from Paid.
// PaymentFailed and Shipped admit no further transitions.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusCreated},
	StatusCreated: {StatusPaid, StatusPaymentFailed},
	StatusPaid:    {StatusShipped},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCreated, StatusPaid, StatusPaymentFailed, StatusShipped:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another. A status never regresses and terminal states stay terminal.
// Both the payment result consumer and the administrative override go
// through this single check.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
