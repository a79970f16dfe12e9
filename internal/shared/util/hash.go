package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashKey returns a filesystem-safe identifier for a client ID or email.
func HashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashEmail hashes a normalized email for logging; raw addresses never hit the logs.
func HashEmail(email string) string {
	return HashKey(strings.ToLower(strings.TrimSpace(email)))[:16]
}
