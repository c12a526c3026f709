package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/g3techvn/g-3.vn-sub004/internal/models"
)

type VoucherRepo struct {
	db *sql.DB
}

func NewVoucherRepo(db *sql.DB) *VoucherRepo {
	return &VoucherRepo{db: db}
}

// GetActiveByCode looks up a voucher by exact code match where the row
// is active. Returns (nil, nil) when no such voucher exists; the caller
// treats inactive and missing identically.
func (r *VoucherRepo) GetActiveByCode(ctx context.Context, code string) (*models.Voucher, error) {
	query := `
		SELECT id, code, COALESCE(title, ''), COALESCE(description, ''),
		       discount_type, discount_amount, max_discount_amount,
		       min_order_value, valid_from, valid_to,
		       usage_limit, used_count, is_active
		FROM vouchers
		WHERE code = $1 AND is_active = TRUE
	`

	var (
		v           models.Voucher
		maxDiscount sql.NullFloat64
		minOrder    sql.NullFloat64
		validFrom   sql.NullTime
		validTo     sql.NullTime
		usageLimit  sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&v.ID,
		&v.Code,
		&v.Title,
		&v.Description,
		&v.DiscountType,
		&v.DiscountAmount,
		&maxDiscount,
		&minOrder,
		&validFrom,
		&validTo,
		&usageLimit,
		&v.UsedCount,
		&v.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query voucher %q: %w", code, err)
	}

	if maxDiscount.Valid {
		v.MaxDiscountAmount = &maxDiscount.Float64
	}
	if minOrder.Valid {
		v.MinOrderValue = &minOrder.Float64
	}
	if validFrom.Valid {
		v.ValidFrom = &validFrom.Time
	}
	if validTo.Valid {
		v.ValidTo = &validTo.Time
	}
	if usageLimit.Valid {
		limit := int(usageLimit.Int64)
		v.UsageLimit = &limit
	}
	return &v, nil
}
