package models

import "time"

// RejectReason is a machine-readable code for a business-rule rejection.
// System failures are reported through ValidationResult.Error instead.
type RejectReason string

const (
	ReasonMissingCode        RejectReason = "missing_code"
	ReasonNotFoundOrInactive RejectReason = "not_found_or_inactive"
	ReasonExpired            RejectReason = "expired"
	ReasonNotYetActive       RejectReason = "not_yet_active"
	ReasonUsageLimitReached  RejectReason = "usage_limit_reached"
	ReasonBelowMinimumOrder  RejectReason = "below_minimum_order"
	ReasonAlreadyUsed        RejectReason = "already_used"
)

// VoucherInfo carries the public fields of a validated voucher plus the
// discount computed for the order total it was validated against.
type VoucherInfo struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	DiscountAmount float64      `json:"discount_amount"`
	DiscountType   DiscountType `json:"discount_type"`
	MinOrderValue  float64      `json:"min_order_value"`
	ExpiresAt      *time.Time   `json:"expires_at,omitempty"`
}

type ValidationResult struct {
	Valid   bool         `json:"valid"`
	Voucher *VoucherInfo `json:"voucher,omitempty"`
	Reason  RejectReason `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}
