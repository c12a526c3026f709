package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type UsageRepo struct {
	db *sql.DB
}

func NewUsageRepo(db *sql.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

// HasUserUsed reports whether a usage row exists for the user and this
// voucher, matched by id OR code. The code match is defensive against a
// voucher being re-issued under the same code with a new id. The row is
// written by the order-placement flow, not here.
func (r *UsageRepo) HasUserUsed(ctx context.Context, userID, voucherID, code string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM voucher_usage
			WHERE user_id = $1 AND (voucher_id = $2 OR voucher_code = $3)
		)
	`

	var used bool
	if err := r.db.QueryRowContext(ctx, query, userID, voucherID, code).Scan(&used); err != nil {
		return false, fmt.Errorf("query voucher usage for user %q: %w", userID, err)
	}
	return used, nil
}
