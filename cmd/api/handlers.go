package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"orderproc/internal/broker"
	"orderproc/internal/messages"
	"orderproc/internal/models"
	"orderproc/internal/validator"
)

// orderStore is the slice of the persistence layer the API needs.
type orderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}

type publisher interface {
	Publish(ctx context.Context, exchange string, body []byte) error
}

func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var input messages.Order
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	order := &models.Order{
		ID:          uuid.New(),
		CustomerID:  input.CustomerID,
		TotalAmount: input.TotalAmount,
		Status:      models.StatusCreated,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	v := validator.New()
	models.ValidateOrder(v, order)
	if !v.Valid() {
		errorResponse(w, http.StatusBadRequest, v.Errors)
		return
	}

	if err := app.orders.Insert(r.Context(), order); err != nil {
		app.logger.Error("Failed to insert order", "error", err)
		errorResponse(w, http.StatusInternalServerError, "could not create order")
		return
	}

	event := messages.FromModel(order)
	body, err := json.Marshal(event)
	if err != nil {
		app.logger.Error("Failed to marshal order event", "order_id", order.ID, "error", err)
		errorResponse(w, http.StatusInternalServerError, "could not create order")
		return
	}

	// The order row is already committed. A publish failure here leaves
	// the order stuck in Created, so it is surfaced instead of swallowed.
	if err := app.events.Publish(r.Context(), broker.OrderExchange, body); err != nil {
		app.logger.Error("Order persisted but event publish failed", "order_id", order.ID, "error", err)
		errorResponse(w, http.StatusBadGateway, "order stored but event could not be published")
		return
	}

	app.logger.Info("Order created", "order_id", order.ID)

	if err := writeJSON(w, http.StatusCreated, envelope{"order": event}, nil); err != nil {
		app.logger.Error("Failed to write response", "error", err)
	}
}

func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := app.orders.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "order not found")
			return
		}
		app.logger.Error("Failed to get order", "order_id", orderID, "error", err)
		errorResponse(w, http.StatusInternalServerError, "could not fetch order")
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"order": messages.FromModel(order)}, nil); err != nil {
		app.logger.Error("Failed to write response", "error", err)
	}
}

// updateOrderStatusHandler is the administrative override. Unlike the
// event-driven path it is synchronous, but both go through the same
// transition check.
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var input struct {
		Status models.OrderStatus `json:"Status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if !input.Status.Valid() {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", input.Status))
		return
	}

	order, err := app.orders.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "order not found")
			return
		}
		app.logger.Error("Failed to get order", "order_id", orderID, "error", err)
		errorResponse(w, http.StatusInternalServerError, "could not fetch order")
		return
	}

	if !models.CanTransition(order.Status, input.Status) {
		errorResponse(w, http.StatusConflict,
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, input.Status))
		return
	}

	if err := app.orders.UpdateStatus(r.Context(), orderID, input.Status); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "order not found")
			return
		}
		app.logger.Error("Failed to update order status", "order_id", orderID, "error", err)
		errorResponse(w, http.StatusInternalServerError, "could not update order")
		return
	}

	app.logger.Info("Order status updated", "order_id", orderID, "order_status", input.Status)

	order.Status = input.Status
	if err := writeJSON(w, http.StatusOK, envelope{"order": messages.FromModel(order)}, nil); err != nil {
		app.logger.Error("Failed to write response", "error", err)
	}
}

func (app *application) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, envelope{"status": "ok"}, nil); err != nil {
		app.logger.Error("Failed to write response", "error", err)
	}
}

func (app *application) readyzHandler(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		if err := app.db.PingContext(r.Context()); err != nil {
			errorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if err := writeJSON(w, http.StatusOK, envelope{"status": "ready"}, nil); err != nil {
		app.logger.Error("Failed to write response", "error", err)
	}
}
