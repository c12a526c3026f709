package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/g3techvn/g-3.vn-sub004/internal/models"
	"github.com/g3techvn/g-3.vn-sub004/internal/ordertoken"
)

// OrderRepo is the read capability the handler needs (interface to
// allow mocking).
type OrderRepo interface {
	GetSummary(ctx context.Context, orderID string) (*models.OrderSummary, error)
}

type OrderHandler struct {
	orders OrderRepo
	tokens *ordertoken.Issuer
	secret string
	logger *zap.Logger
}

func NewOrderHandler(orders OrderRepo, tokens *ordertoken.Issuer, secret string, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, tokens: tokens, secret: secret, logger: logger}
}

// IssueToken handles POST /api/orders/{orderID}/access-token. Called by
// the order-placement flow right after an order is created so the
// confirmation page can be reached without a session.
func (h *OrderHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderID"))
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order id required")
		return
	}

	order, err := h.orders.GetSummary(r.Context(), orderID)
	if err != nil {
		h.logger.Error("order lookup failed", zap.String("order_id", orderID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not issue access token")
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	token, err := h.tokens.Issue(orderID)
	if err != nil {
		h.logger.Error("token issue failed", zap.String("order_id", orderID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not issue access token")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":      token,
		"expires_in": int(ordertoken.TokenTTL.Seconds()),
	})
}

// Confirmation handles GET /api/orders/confirmation?token=. The token is
// marked used only after the order loaded successfully, so a transient
// datastore failure does not burn it.
func (h *OrderHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token required")
		return
	}

	res := h.tokens.Validate(token)
	if !res.Valid {
		writeError(w, http.StatusUnauthorized, res.Reason)
		return
	}

	order, err := h.orders.GetSummary(r.Context(), res.OrderID)
	if err != nil {
		h.logger.Error("order lookup failed", zap.String("order_id", res.OrderID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load order")
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.tokens.MarkUsed(token)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"confirmation_id": uuid.NewString(),
		"order":           order,
		"verification":    ordertoken.VerificationHash(order.ID, order.CustomerPhone, order.CustomerEmail, h.secret),
	})
}
