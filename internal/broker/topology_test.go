package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopologyNames(t *testing.T) {
	assert.Equal(t, "order_exchange", OrderExchange)
	assert.Equal(t, "payment_exchange", PaymentExchange)
	assert.Equal(t, "notification_exchange", NotificationExchange)
	assert.Equal(t, "order_payment_queue", OrderPaymentQueue)
	assert.Equal(t, "payment_notification_queue", PaymentNotificationQueue)
	assert.Equal(t, "order_update_queue", OrderUpdateQueue)
}

func TestTopologyTables(t *testing.T) {
	assert.ElementsMatch(t, []string{OrderExchange, PaymentExchange, NotificationExchange}, exchanges)
	assert.ElementsMatch(t, []string{OrderPaymentQueue, PaymentNotificationQueue, OrderUpdateQueue}, queues)

	// Every queue is bound exactly once.
	seen := make(map[string]string)
	for _, bd := range bindings {
		_, dup := seen[bd.Queue]
		assert.False(t, dup, "queue %s bound twice", bd.Queue)
		seen[bd.Queue] = bd.Exchange
	}

	assert.Equal(t, OrderExchange, seen[OrderPaymentQueue])

	// Fanout breadth: two independent queues hang off the payment
	// exchange, one for the order updater and one for the notifier.
	assert.Equal(t, PaymentExchange, seen[OrderUpdateQueue])
	assert.Equal(t, PaymentExchange, seen[PaymentNotificationQueue])
}
