// Package payment decides payment outcomes and publishes the results.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"orderproc/internal/broker"
	"orderproc/internal/messages"
)

// ErrAlreadyProcessed is returned when a payment result for the order id
// has already been claimed; a redelivered OrderCreated message must not
// re-run the (non-deterministic) decision.
var ErrAlreadyProcessed = errors.New("payment already processed for order")

// claimTTL bounds how long a processed order id is remembered.
const claimTTL = 24 * time.Hour

// Publisher publishes a message body to an exchange.
type Publisher interface {
	Publish(ctx context.Context, exchange string, body []byte) error
}

// ClaimStore records which order ids have already been decided.
// *cache.Cache satisfies it.
type ClaimStore interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// Processor turns an order id into exactly one published PaymentResult.
type Processor struct {
	decider   Decider
	publisher Publisher
	claims    ClaimStore
	logger    *slog.Logger
}

// NewProcessor builds a Processor. claims may be nil, in which case
// redelivered orders are decided again.
func NewProcessor(decider Decider, publisher Publisher, claims ClaimStore, logger *slog.Logger) *Processor {
	return &Processor{
		decider:   decider,
		publisher: publisher,
		claims:    claims,
		logger:    logger,
	}
}

// Process decides the payment for an order and publishes the result to
// the payment exchange. A second call for the same order id returns
// ErrAlreadyProcessed instead of deciding twice.
func (p *Processor) Process(ctx context.Context, orderID uuid.UUID) (*messages.PaymentResult, error) {
	claimKey := "payment:" + orderID.String()

	if p.claims != nil {
		claimed, err := p.claims.SetNX(ctx, claimKey, 1, claimTTL)
		if err != nil {
			return nil, fmt.Errorf("claim payment for order %s: %w", orderID, err)
		}
		if !claimed {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrAlreadyProcessed)
		}
	}

	success, message := p.decider.Decide(orderID)
	result := &messages.PaymentResult{
		OrderID: orderID,
		Success: success,
		Message: message,
	}

	body, err := json.Marshal(result)
	if err != nil {
		p.releaseClaim(ctx, claimKey)
		return nil, fmt.Errorf("marshal payment result: %w", err)
	}

	if err := p.publisher.Publish(ctx, broker.PaymentExchange, body); err != nil {
		// The result never made it out; release the claim so a
		// redelivery can try again.
		p.releaseClaim(ctx, claimKey)
		return nil, err
	}

	p.logger.Info("Payment processed", "order_id", orderID, "success", success)
	return result, nil
}

func (p *Processor) releaseClaim(ctx context.Context, claimKey string) {
	if p.claims == nil {
		return
	}
	if err := p.claims.Del(ctx, claimKey); err != nil {
		p.logger.Error("Failed to release payment claim", "key", claimKey, "error", err)
	}
}
