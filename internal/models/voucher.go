package models

import "time"

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Voucher is the read model for a discount code. The row is owned by the
// admin/catalog subsystem; this service only reads it.
type Voucher struct {
	ID                string
	Code              string
	Title             string
	Description       string
	DiscountType      DiscountType
	DiscountAmount    float64
	MaxDiscountAmount *float64
	MinOrderValue     *float64
	ValidFrom         *time.Time
	ValidTo           *time.Time
	UsageLimit        *int
	UsedCount         int
	IsActive          bool
}
