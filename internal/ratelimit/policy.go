package ratelimit

import "time"

// Policy is a named fixed-window budget. Route groups pick one of the
// presets below instead of inlining window math at the call site.
type Policy struct {
	Window      time.Duration
	MaxRequests int
}

var (
	// OrderPlacement throttles order creation hard; a checkout is a
	// deliberate action, not something a browser retries in a loop.
	OrderPlacement = Policy{Window: time.Minute, MaxRequests: 5}

	// Auth covers login/OTP style endpoints.
	Auth = Policy{Window: time.Minute, MaxRequests: 3}

	// API is the moderate default for authenticated storefront calls.
	API = Policy{Window: time.Minute, MaxRequests: 60}

	// PublicRead is lenient; catalog reads are cheap and cacheable.
	PublicRead = Policy{Window: time.Minute, MaxRequests: 120}
)
