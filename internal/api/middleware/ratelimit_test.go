package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/g3techvn/g-3.vn-sub004/internal/ratelimit"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, ratelimit.Policy) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("backend down")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAllowsAndSetsHeaders(t *testing.T) {
	limiter := ratelimit.NewLimiter()
	defer limiter.Stop()
	policy := ratelimit.Policy{Window: time.Minute, MaxRequests: 2}
	h := RateLimit(limiter, policy, zap.NewNop())(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter()
	defer limiter.Stop()
	policy := ratelimit.Policy{Window: time.Minute, MaxRequests: 1}
	h := RateLimit(limiter, policy, zap.NewNop())(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if i == 0 {
			require.Equal(t, http.StatusOK, rec.Code)
			continue
		}
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"error":"too many requests"}`, rec.Body.String())
	}
}

func TestRateLimitSeparateClients(t *testing.T) {
	limiter := ratelimit.NewLimiter()
	defer limiter.Stop()
	policy := ratelimit.Policy{Window: time.Minute, MaxRequests: 1}
	h := RateLimit(limiter, policy, zap.NewNop())(okHandler())

	for _, ip := range []string{"1.1.1.1", "2.2.2.2"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	h := RateLimit(failingStore{}, ratelimit.API, zap.NewNop())(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
