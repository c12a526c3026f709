package ordertoken

import (
	"crypto/sha256"
	"encoding/hex"
)

const verificationHashLen = 16

// VerificationHash derives a short, stateless check value from the
// order's identity and the server secret. It is a low-stakes secondary
// check suitable for embedding in a URL, not a capability token.
func VerificationHash(orderID, phone, email, secret string) string {
	sum := sha256.Sum256([]byte(orderID + phone + email + secret))
	return hex.EncodeToString(sum[:])[:verificationHashLen]
}
