package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderproc/internal/messages"
	"orderproc/internal/models"
	"orderproc/internal/worker"
)

type fakeStore struct {
	orders  map[uuid.UUID]*models.Order
	updates map[uuid.UUID]models.OrderStatus
	getErr  error
}

func newFakeStore(orders ...*models.Order) *fakeStore {
	s := &fakeStore{
		orders:  make(map[uuid.UUID]*models.Order),
		updates: make(map[uuid.UUID]models.OrderStatus),
	}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) error {
	if _, ok := s.orders[id]; !ok {
		return models.ErrNotFound
	}
	s.orders[id].Status = status
	s.updates[id] = status
	return nil
}

func resultDelivery(t *testing.T, result messages.PaymentResult) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(result)
	require.NoError(t, err)
	return amqp.Delivery{Body: body}
}

func testHandler(store *fakeStore) *handler {
	return &handler{
		orders: store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestHandleMessageSuccessMarksPaid(t *testing.T) {
	orderID := uuid.New()
	store := newFakeStore(&models.Order{ID: orderID, Status: models.StatusCreated})

	err := testHandler(store).HandleMessage(context.Background(),
		resultDelivery(t, messages.PaymentResult{OrderID: orderID, Success: true}))

	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, store.updates[orderID])
}

func TestHandleMessageFailureMarksPaymentFailed(t *testing.T) {
	orderID := uuid.New()
	store := newFakeStore(&models.Order{ID: orderID, Status: models.StatusCreated})

	err := testHandler(store).HandleMessage(context.Background(),
		resultDelivery(t, messages.PaymentResult{OrderID: orderID, Success: false, Message: "declined"}))

	require.NoError(t, err)
	assert.Equal(t, models.StatusPaymentFailed, store.updates[orderID])
}

func TestHandleMessageUnknownOrderIsAcked(t *testing.T) {
	store := newFakeStore()

	err := testHandler(store).HandleMessage(context.Background(),
		resultDelivery(t, messages.PaymentResult{OrderID: uuid.New(), Success: true}))

	assert.NoError(t, err, "unknown order must be treated as handled")
	assert.Empty(t, store.updates, "no write may happen for an unknown order")
}

func TestHandleMessageRedeliveryIsIdempotent(t *testing.T) {
	orderID := uuid.New()
	store := newFakeStore(&models.Order{ID: orderID, Status: models.StatusPaid})

	err := testHandler(store).HandleMessage(context.Background(),
		resultDelivery(t, messages.PaymentResult{OrderID: orderID, Success: true}))

	require.NoError(t, err)
	assert.Empty(t, store.updates, "an order already in the target status is left alone")
}

func TestHandleMessageIgnoresIllegalTransition(t *testing.T) {
	orderID := uuid.New()
	store := newFakeStore(&models.Order{ID: orderID, Status: models.StatusShipped})

	err := testHandler(store).HandleMessage(context.Background(),
		resultDelivery(t, messages.PaymentResult{OrderID: orderID, Success: false}))

	require.NoError(t, err)
	assert.Empty(t, store.updates)
}

func TestHandleMessageBadJSONIsPermanent(t *testing.T) {
	store := newFakeStore()

	err := testHandler(store).HandleMessage(context.Background(), amqp.Delivery{Body: []byte("{not json")})

	require.Error(t, err)
	assert.False(t, worker.IsRetryable(err), "a poison message must not be requeued")
}

func TestHandleMessageStoreErrorIsRetryable(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")

	err := testHandler(store).HandleMessage(context.Background(),
		resultDelivery(t, messages.PaymentResult{OrderID: uuid.New(), Success: true}))

	require.Error(t, err)
	assert.True(t, worker.IsRetryable(err))
}
