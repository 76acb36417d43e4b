package textbook

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPrime is returned when p or q is missing or not prime.
	ErrNotPrime = errors.New("not a prime number")

	// ErrPrimeTooSmall is returned when p or q does not exceed the minimum.
	ErrPrimeTooSmall = errors.New("prime is too small")

	// ErrEqualPrimes is returned when p and q are the same prime.
	ErrEqualPrimes = errors.New("p and q must be distinct")

	// ErrExponentSearch is returned when no public exponent coprime with phi
	// was found within MaxExponentAttempts draws.
	ErrExponentSearch = errors.New("no public exponent found")

	// ErrInvalidKey is returned when a key has a missing or non-positive
	// component.
	ErrInvalidKey = errors.New("invalid key")

	// ErrModulusTooSmall is returned when the modulus cannot hold a single
	// byte per block.
	ErrModulusTooSmall = errors.New("modulus too small to hold one byte per block")

	// ErrBlockOutOfRange is returned when a ciphertext block is missing,
	// negative or not below the modulus.
	ErrBlockOutOfRange = errors.New("ciphertext block out of range")
)

// ArgError ties a validation failure to the argument that caused it.
type ArgError struct {
	// Name identifies the argument, e.g. "p" or "blocks[3]".
	Name string
	Err  error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ArgError) Unwrap() error {
	return e.Err
}

func argError(name string, err error) error {
	return &ArgError{Name: name, Err: err}
}
