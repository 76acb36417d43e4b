package cipherkit

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/cipherkit/cipherkit-go/internal/textbook"
)

// DefaultMinPrime is the value p and q must exceed unless overridden with
// WithMinPrime. It is a teaching threshold, not a security parameter.
const DefaultMinPrime = textbook.DefaultMinPrime

// keyConfig holds configuration for RSA key generation.
type keyConfig struct {
	rand     io.Reader
	minPrime *big.Int
}

// KeyOption configures RSA key generation.
type KeyOption func(*keyConfig)

func defaultKeyConfig() *keyConfig {
	return &keyConfig{
		rand:     rand.Reader,
		minPrime: big.NewInt(DefaultMinPrime),
	}
}

// WithRand sets the random source used to pick the public exponent.
// Passing a seeded source makes key generation reproducible.
// Default: crypto/rand.Reader
func WithRand(r io.Reader) KeyOption {
	return func(c *keyConfig) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithMinPrime sets the value p and q must each exceed.
// Default: DefaultMinPrime (10)
func WithMinPrime(min int64) KeyOption {
	return func(c *keyConfig) {
		c.minPrime = big.NewInt(min)
	}
}
