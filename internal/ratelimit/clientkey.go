package ratelimit

import (
	"net/http"
	"strings"
)

// ClientKey derives the limiter bucket for a request from the first
// present of X-Forwarded-For (first comma segment), X-Real-IP and
// CF-Connecting-IP. Requests with none of these share a single
// "unknown" bucket; that coarseness is deliberate.
func ClientKey(r *http.Request) string {
	if v := r.Header.Get("X-Forwarded-For"); v != "" {
		if i := strings.Index(v, ","); i >= 0 {
			v = v[:i]
		}
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(r.Header.Get("X-Real-IP")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); v != "" {
		return v
	}
	return "unknown"
}
