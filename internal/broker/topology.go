package broker

import "fmt"

type binding struct {
	Queue    string
	Exchange string
}

// All exchanges are durable fanout exchanges. The notification exchange
// carries no bindings yet; it is declared so every service agrees on the
// full exchange set.
var exchanges = []string{
	OrderExchange,
	PaymentExchange,
	NotificationExchange,
}

var queues = []string{
	OrderPaymentQueue,
	PaymentNotificationQueue,
	OrderUpdateQueue,
}

// Fanout bindings use an empty routing key: every bound queue receives
// every message published to its exchange.
var bindings = []binding{
	{Queue: OrderPaymentQueue, Exchange: OrderExchange},
	{Queue: PaymentNotificationQueue, Exchange: PaymentExchange},
	{Queue: OrderUpdateQueue, Exchange: PaymentExchange},
}

// SetupTopology declares every exchange, queue, and binding of the order
// processing saga. Declares are idempotent at the broker, so each
// connecting process runs this at startup and concurrent calls from
// multiple processes are safe.
func (b *Broker) SetupTopology() error {
	if b == nil || b.ch == nil {
		return ErrNotConnected
	}

	for _, exchange := range exchanges {
		err := b.ch.ExchangeDeclare(
			exchange, // name
			"fanout", // type
			true,     // durable
			false,    // auto-deleted
			false,    // internal
			false,    // no-wait
			nil,      // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
	}

	for _, queue := range queues {
		_, err := b.ch.QueueDeclare(
			queue, // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
	}

	for _, bd := range bindings {
		err := b.ch.QueueBind(
			bd.Queue,    // queue name
			"",          // routing key
			bd.Exchange, // exchange
			false,       // no-wait
			nil,         // args
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", bd.Queue, bd.Exchange, err)
		}
	}

	b.logger.Info("Broker topology declared",
		"exchanges", len(exchanges),
		"queues", len(queues),
		"bindings", len(bindings),
	)
	return nil
}
