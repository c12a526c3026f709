package ordertoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	i := NewIssuer()
	defer i.Stop()

	token, err := i.Issue("order-123")
	require.NoError(t, err)
	assert.Len(t, token, 64, "32 random bytes hex-encoded")

	res := i.Validate(token)
	assert.True(t, res.Valid)
	assert.Equal(t, "order-123", res.OrderID)

	// Validation alone must not consume the token.
	res = i.Validate(token)
	assert.True(t, res.Valid)
}

func TestUnknownToken(t *testing.T) {
	i := NewIssuer()
	defer i.Stop()

	res := i.Validate("deadbeef")
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNotFound, res.Reason)
}

func TestMarkUsedBlocksReplay(t *testing.T) {
	i := NewIssuer()
	defer i.Stop()

	token, err := i.Issue("order-123")
	require.NoError(t, err)

	i.MarkUsed(token)
	res := i.Validate(token)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonUsed, res.Reason)

	// The record is kept after a replay attempt, so the reason stays
	// "already used" rather than degrading to "not found".
	res = i.Validate(token)
	assert.Equal(t, ReasonUsed, res.Reason)
}

func TestMarkUsedUnknownTokenIsNoop(t *testing.T) {
	i := NewIssuer()
	defer i.Stop()
	i.MarkUsed("deadbeef")
}

func TestExpiredTokenDeletedOnValidate(t *testing.T) {
	i := NewIssuer()
	defer i.Stop()

	token, err := i.Issue("order-123")
	require.NoError(t, err)

	i.mu.Lock()
	i.tokens[token].expiresAt = time.Now().Add(-time.Second)
	i.mu.Unlock()

	res := i.Validate(token)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonExpired, res.Reason)

	// Cleanup happened, so the next lookup reports not found.
	res = i.Validate(token)
	assert.Equal(t, ReasonNotFound, res.Reason)
}

func TestSweepRemovesExpiredRegardlessOfUse(t *testing.T) {
	i := NewIssuer()
	defer i.Stop()

	used, err := i.Issue("order-1")
	require.NoError(t, err)
	i.MarkUsed(used)
	fresh, err := i.Issue("order-2")
	require.NoError(t, err)

	i.mu.Lock()
	i.tokens[used].expiresAt = time.Now().Add(-time.Second)
	i.mu.Unlock()

	i.sweep(time.Now())

	i.mu.Lock()
	_, usedKept := i.tokens[used]
	_, freshKept := i.tokens[fresh]
	i.mu.Unlock()
	assert.False(t, usedKept)
	assert.True(t, freshKept)
}

func TestTokensAreUnique(t *testing.T) {
	i := NewIssuer()
	defer i.Stop()

	a, err := i.Issue("order-1")
	require.NoError(t, err)
	b, err := i.Issue("order-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerificationHash(t *testing.T) {
	h := VerificationHash("order-1", "0901234567", "a@example.com", "secret")
	assert.Len(t, h, 16)

	// Stateless and deterministic.
	assert.Equal(t, h, VerificationHash("order-1", "0901234567", "a@example.com", "secret"))

	// Any input change produces a different value.
	assert.NotEqual(t, h, VerificationHash("order-2", "0901234567", "a@example.com", "secret"))
	assert.NotEqual(t, h, VerificationHash("order-1", "0901234567", "a@example.com", "other"))
}
