// Package ordertoken issues one-time, time-limited opaque tokens that
// grant access to a freshly created order, independent of any user
// session. A token is meant to ride in the confirmation-page URL and be
// redeemed exactly once.
package ordertoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

const (
	tokenBytes    = 32 // 256 bits of entropy, hex-encoded
	TokenTTL      = 24 * time.Hour
	sweepInterval = 5 * time.Minute
)

// Validation failure reasons. An unknown and an already-swept token are
// indistinguishable on purpose.
const (
	ReasonNotFound = "not found or expired"
	ReasonExpired  = "expired"
	ReasonUsed     = "already used"
)

type record struct {
	orderID   string
	expiresAt time.Time
	used      bool
}

// Result is the outcome of validating a token. Validate never returns
// an error; every failure path is a tagged invalid result.
type Result struct {
	Valid   bool
	OrderID string
	Reason  string
}

// Issuer owns the in-memory token table. Tokens do not survive a
// process restart; that loss is an accepted tradeoff.
type Issuer struct {
	mu     sync.Mutex
	tokens map[string]*record

	quit     chan struct{}
	stopOnce sync.Once
}

func NewIssuer() *Issuer {
	i := &Issuer{
		tokens: make(map[string]*record),
		quit:   make(chan struct{}),
	}
	go i.sweepLoop()
	return i
}

// Issue generates a fresh token for orderID, valid for TokenTTL.
func (i *Issuer) Issue(orderID string) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate order token: %w", err)
	}
	token := hex.EncodeToString(buf)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.tokens[token] = &record{orderID: orderID, expiresAt: time.Now().Add(TokenTTL)}
	return token, nil
}

// Validate checks the token without consuming it; callers burn it with
// MarkUsed only after the gated action succeeded. An expired record is
// deleted on the spot, a used one is kept so replay attempts stay
// observable.
func (i *Issuer) Validate(token string) Result {
	i.mu.Lock()
	defer i.mu.Unlock()

	rec, ok := i.tokens[token]
	if !ok {
		return Result{Reason: ReasonNotFound}
	}
	if time.Now().After(rec.expiresAt) {
		delete(i.tokens, token)
		return Result{Reason: ReasonExpired}
	}
	if rec.used {
		return Result{Reason: ReasonUsed}
	}
	return Result{Valid: true, OrderID: rec.orderID}
}

// MarkUsed flags the token as redeemed. No-op for unknown tokens.
func (i *Issuer) MarkUsed(token string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if rec, ok := i.tokens[token]; ok {
		rec.used = true
	}
}

// Stop halts the background sweeper.
func (i *Issuer) Stop() {
	i.stopOnce.Do(func() { close(i.quit) })
}

func (i *Issuer) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			i.sweep(time.Now())
		case <-i.quit:
			return
		}
	}
}

// sweep drops every expired record, used or not.
func (i *Issuer) sweep(now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for token, rec := range i.tokens {
		if now.After(rec.expiresAt) {
			delete(i.tokens, token)
		}
	}
}
