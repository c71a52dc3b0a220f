package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// Digits is the fixed code length sent to customers.
	Digits = 4

	// DefaultTTL is how long a delivery code stays valid.
	DefaultTTL = 30 * time.Minute

	// MaxAttempts bounds verification tries before the code is burned.
	MaxAttempts = 5
)

// Generate returns a zero-padded 4-digit code from crypto/rand.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("can't read random: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
