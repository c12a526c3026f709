package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/g3techvn/g-3.vn-sub004/internal/models"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// GetSummary loads the order header for the confirmation page. Returns
// (nil, nil) when the order does not exist.
func (r *OrderRepo) GetSummary(ctx context.Context, orderID string) (*models.OrderSummary, error) {
	query := `
		SELECT id, status, total,
		       COALESCE(customer_name, ''), COALESCE(customer_phone, ''), COALESCE(customer_email, ''),
		       created_at
		FROM orders
		WHERE id = $1
	`

	var o models.OrderSummary
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID,
		&o.Status,
		&o.Total,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query order %q: %w", orderID, err)
	}
	return &o, nil
}
