package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns n crypto-random bytes hex-encoded, so the
// string is 2n characters long. Verification tokens are built from
// this.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)

	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
