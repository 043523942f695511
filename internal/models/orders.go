package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderproc/internal/validator"
)

// ErrNotFound is returned when an order id has no matching row.
var ErrNotFound = errors.New("order not found")

// Order is the persisted order record. TotalAmount is stored as
// numeric(18,2), so amounts round-trip with two-decimal precision.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ValidateOrder(v *validator.Validator, order *Order) {
	v.Check(order.CustomerID != "", "customer_id", "must be provided")
	v.Check(!order.TotalAmount.IsNegative(), "total_amount", "must be zero or positive")
}

type OrderModel struct {
	DB *sql.DB
}

func (o OrderModel) Insert(ctx context.Context, order *Order) error {
	_, err := o.DB.ExecContext(
		ctx,
		`INSERT INTO orders (id, customer_id, total_amount, status, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID, order.CustomerID, order.TotalAmount, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (o OrderModel) Get(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	order := &Order{}
	row := o.DB.QueryRowContext(
		ctx,
		`SELECT id, customer_id, total_amount, status, created_at, updated_at FROM orders WHERE id = $1`,
		orderID,
	)
	err := row.Scan(&order.ID, &order.CustomerID, &order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return order, nil
}

func (o OrderModel) UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error {
	res, err := o.DB.ExecContext(
		ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("update order %s status: %w", orderID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order %s status: %w", orderID, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
