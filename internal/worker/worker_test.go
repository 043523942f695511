package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

type stubHandler struct {
	err error
}

func (h stubHandler) HandleMessage(context.Context, amqp.Delivery) error {
	return h.err
}

func testWorker() *Worker {
	return &Worker{
		queueName: "test_queue",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestDispatchAckOnSuccess(t *testing.T) {
	ack := &fakeAcknowledger{}
	msg := amqp.Delivery{Acknowledger: ack, DeliveryTag: 1}

	testWorker().dispatch(context.Background(), stubHandler{err: nil}, msg)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestDispatchDropOnFailure(t *testing.T) {
	// A plain error and an explicitly permanent one are both dropped
	// without requeue.
	for _, err := range []error{
		errors.New("boom"),
		Permanent(errors.New("poison message")),
	} {
		ack := &fakeAcknowledger{}
		msg := amqp.Delivery{Acknowledger: ack, DeliveryTag: 1}

		testWorker().dispatch(context.Background(), stubHandler{err: err}, msg)

		assert.False(t, ack.acked)
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeued, "message must not be requeued for %v", err)
	}
}

func TestDispatchRequeueOnRetryable(t *testing.T) {
	ack := &fakeAcknowledger{}
	msg := amqp.Delivery{Acknowledger: ack, DeliveryTag: 1}

	testWorker().dispatch(context.Background(), stubHandler{err: Retryable(errors.New("store unreachable"))}, msg)

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}

func TestIsRetryable(t *testing.T) {
	base := errors.New("base")

	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(base))
	assert.False(t, IsRetryable(Permanent(base)))
	assert.True(t, IsRetryable(Retryable(base)))

	// Classification survives wrapping.
	wrapped := fmt.Errorf("handling message: %w", Retryable(base))
	assert.True(t, IsRetryable(wrapped))
}

func TestDispositionConstructorsPreserveNil(t *testing.T) {
	require.NoError(t, Retryable(nil))
	require.NoError(t, Permanent(nil))
}

func TestDispositionUnwrap(t *testing.T) {
	base := errors.New("base")
	assert.ErrorIs(t, Retryable(base), base)
	assert.ErrorIs(t, Permanent(base), base)
}
