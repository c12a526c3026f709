package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/g3techvn/g-3.vn-sub004/internal/service"
)

type ValidateVoucherRequest struct {
	Code       string  `json:"code"`
	UserID     string  `json:"user_id,omitempty"`
	OrderTotal float64 `json:"order_total"`
}

type VoucherHandler struct {
	service *service.VoucherService
	logger  *zap.Logger
}

func NewVoucherHandler(svc *service.VoucherService, logger *zap.Logger) *VoucherHandler {
	return &VoucherHandler{service: svc, logger: logger}
}

// Validate handles POST /api/vouchers/validate. Business rejections come
// back 200 with valid=false; only a datastore failure maps to 503.
func (h *VoucherHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	result := h.service.Validate(r.Context(), req.Code, req.UserID, req.OrderTotal)
	if result.Error != "" {
		writeJSON(w, http.StatusServiceUnavailable, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
