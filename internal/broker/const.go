package broker

// Fixed topology names shared by all services. They must match across
// every connecting process, so they are constants rather than config.
const (
	OrderExchange        = "order_exchange"
	PaymentExchange      = "payment_exchange"
	NotificationExchange = "notification_exchange"

	// Order intake publishes to the order exchange; the payment worker
	// reads from:
	OrderPaymentQueue = "order_payment_queue"

	// The payment worker publishes to the payment exchange; the order
	// updater and the notifier read from their own bound queues:
	OrderUpdateQueue         = "order_update_queue"
	PaymentNotificationQueue = "payment_notification_queue"
)
