package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
)

// Postgres error codes that mean another transaction got there first
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgLockNotAvailable     = "55P03"
)

// pgCode extracts the SQLSTATE from either driver's error type
func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isContention(err error) bool {
	switch pgCode(err) {
	case pgSerializationFailure, pgLockNotAvailable:
		return true
	}
	return false
}

// OrderRepo stores orders in PostgreSQL
type OrderRepo struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrder inserts a new order
func (r *OrderRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	dto := models.NewOrderDTO(order)

	query := `
		INSERT INTO orders (
			id, restaurant_id,
			restaurant_lat, restaurant_lng,
			destination_lat, destination_lng,
			priority, status, assigned_driver_id, created_at
		) VALUES (
			:id, :restaurant_id,
			:restaurant_lat, :restaurant_lng,
			:destination_lat, :destination_lng,
			:priority, :status, :assigned_driver_id, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, dto); err != nil {
		if pgCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: %s", dispatch.ErrOrderExists, order.ID)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

const selectOrder = `
	SELECT
		id, restaurant_id,
		restaurant_lat, restaurant_lng,
		destination_lat, destination_lng,
		priority, status, assigned_driver_id,
		created_at, picked_up_at, delivered_at
	FROM orders
	WHERE id = $1
`

// GetOrder loads one order
func (r *OrderRepo) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var dto models.OrderDTO
	if err := r.db.GetContext(ctx, &dto, selectOrder, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", dispatch.ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return dto.ToOrder(), nil
}

// MarkOutForDelivery locks the order row and binds the driver while the order is still unassigned
func (r *OrderRepo) MarkOutForDelivery(ctx context.Context, orderID, driverID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var dto models.OrderDTO
	if err := tx.GetContext(ctx, &dto, selectOrder+" FOR UPDATE NOWAIT", orderID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("%w: %s", dispatch.ErrOrderNotFound, orderID)
		case isContention(err):
			return fmt.Errorf("%w: order %s is locked", dispatch.ErrAssignmentConflict, orderID)
		}
		return fmt.Errorf("failed to lock order: %w", err)
	}

	if !dto.ToOrder().Assignable() {
		return fmt.Errorf("%w: order %s is %s", dispatch.ErrAssignmentConflict, orderID, dto.Status)
	}

	updateQuery := `
		UPDATE orders
		SET assigned_driver_id = $2, status = $3
		WHERE id = $1 AND assigned_driver_id IS NULL AND status IN ($4, $5)
	`
	result, err := tx.ExecContext(ctx, updateQuery, orderID, driverID,
		models.OrderStatusOutForDelivery, models.OrderStatusPending, models.OrderStatusAssigned)
	if err != nil {
		if isContention(err) {
			return fmt.Errorf("%w: %v", dispatch.ErrAssignmentConflict, err)
		}
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: order %s was modified by another transaction", dispatch.ErrAssignmentConflict, orderID)
	}

	if err := tx.Commit(); err != nil {
		if isContention(err) {
			return fmt.Errorf("%w: %v", dispatch.ErrAssignmentConflict, err)
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
