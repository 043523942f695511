package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"orderproc/internal/payment"
)

// processPaymentHandler exercises the payment decision and publish
// directly, bypassing the OrderCreated queue.
func processPaymentHandler(processor *payment.Processor, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(r.PathValue("orderId"))
		if err != nil {
			http.Error(w, "Invalid order ID", http.StatusBadRequest)
			return
		}

		result, err := processor.Process(r.Context(), orderID)
		if errors.Is(err, payment.ErrAlreadyProcessed) {
			http.Error(w, "Payment already processed for this order", http.StatusConflict)
			return
		}
		if err != nil {
			logger.Error("Failed to process payment", "order_id", orderID, "error", err)
			http.Error(w, "could not process payment", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.Error("Failed to write response", "error", err)
		}
	}
}
