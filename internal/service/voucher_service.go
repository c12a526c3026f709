package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/g3techvn/g-3.vn-sub004/internal/cache"
	"github.com/g3techvn/g-3.vn-sub004/internal/models"
)

// Repos required by the service (interfaces to allow mocking).
type VoucherRepo interface {
	GetActiveByCode(ctx context.Context, code string) (*models.Voucher, error)
}

type UsageRepo interface {
	HasUserUsed(ctx context.Context, userID, voucherID, code string) (bool, error)
}

// systemErrorMessage is the single caller-facing message for datastore
// failures, distinct from every business-rule rejection.
const systemErrorMessage = "could not validate voucher at this time"

// voucherCacheTTL keeps the row lookup cheap for repeated UI validation
// calls while staying short enough that admin edits show up quickly.
const voucherCacheTTL = 30 * time.Second

// VoucherService decides whether a voucher applies to an order and what
// discount it yields. It is read-only: consuming the voucher (usage row
// + used_count) belongs to the order-placement flow, so Validate is safe
// to call repeatedly for live UI feedback.
type VoucherService struct {
	vouchers VoucherRepo
	usage    UsageRepo
	memo     *cache.Cache
	logger   *zap.Logger
}

func NewVoucherService(vouchers VoucherRepo, usage UsageRepo, memo *cache.Cache, logger *zap.Logger) *VoucherService {
	return &VoucherService{
		vouchers: vouchers,
		usage:    usage,
		memo:     memo,
		logger:   logger,
	}
}

// Validate runs the rule sequence in order; each check assumes every
// earlier one passed, so the first failure short-circuits with its
// specific reason. userID may be empty for anonymous carts, which skips
// the per-user duplicate check.
func (s *VoucherService) Validate(ctx context.Context, code, userID string, orderTotal float64) models.ValidationResult {
	code = strings.TrimSpace(code)
	if code == "" {
		return reject(models.ReasonMissingCode, "voucher code is required")
	}

	v, err := s.lookupVoucher(ctx, code)
	if err != nil {
		s.logger.Error("voucher lookup failed", zap.String("code", code), zap.Error(err))
		return models.ValidationResult{Error: systemErrorMessage}
	}
	if v == nil {
		return reject(models.ReasonNotFoundOrInactive, "voucher not found or no longer active")
	}

	now := time.Now()
	if v.ValidTo != nil && v.ValidTo.Before(now) {
		return reject(models.ReasonExpired, "voucher has expired")
	}
	if v.ValidFrom != nil && v.ValidFrom.After(now) {
		return reject(models.ReasonNotYetActive, "voucher is not active yet")
	}
	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return reject(models.ReasonUsageLimitReached, "voucher usage limit has been reached")
	}
	if v.MinOrderValue != nil && orderTotal < *v.MinOrderValue {
		return reject(models.ReasonBelowMinimumOrder,
			fmt.Sprintf("order total must be at least %.0f to use this voucher", *v.MinOrderValue))
	}

	if userID != "" {
		used, err := s.usage.HasUserUsed(ctx, userID, v.ID, v.Code)
		if err != nil {
			s.logger.Error("voucher usage lookup failed",
				zap.String("code", code), zap.String("user_id", userID), zap.Error(err))
			return models.ValidationResult{Error: systemErrorMessage}
		}
		if used {
			return reject(models.ReasonAlreadyUsed, "voucher has already been used")
		}
	}

	minOrder := 0.0
	if v.MinOrderValue != nil {
		minOrder = *v.MinOrderValue
	}

	return models.ValidationResult{
		Valid:   true,
		Message: "voucher applied",
		Voucher: &models.VoucherInfo{
			ID:             v.ID,
			Code:           v.Code,
			Title:          v.Title,
			Description:    v.Description,
			DiscountAmount: computeDiscount(v, orderTotal),
			DiscountType:   v.DiscountType,
			MinOrderValue:  minOrder,
			ExpiresAt:      v.ValidTo,
		},
	}
}

// computeDiscount applies the voucher to the order total. Percentage
// discounts floor (never round up) and clamp to MaxDiscountAmount when
// set; fixed discounts are flat and uncapped.
func computeDiscount(v *models.Voucher, orderTotal float64) float64 {
	if v.DiscountType != models.DiscountPercentage {
		return v.DiscountAmount
	}
	discount := math.Floor(orderTotal * v.DiscountAmount / 100)
	if v.MaxDiscountAmount != nil && discount > *v.MaxDiscountAmount {
		discount = *v.MaxDiscountAmount
	}
	return discount
}

func (s *VoucherService) lookupVoucher(ctx context.Context, code string) (*models.Voucher, error) {
	key := "voucher:code:" + code
	if cached, ok := s.memo.Get(key); ok {
		if v, ok := cached.(*models.Voucher); ok {
			return v, nil
		}
	}
	v, err := s.vouchers.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if v != nil {
		s.memo.Set(key, v, voucherCacheTTL)
	}
	return v, nil
}

func reject(reason models.RejectReason, message string) models.ValidationResult {
	return models.ValidationResult{Reason: reason, Message: message}
}
