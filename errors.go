package cipherkit

import (
	"errors"
	"fmt"

	"github.com/cipherkit/cipherkit-go/internal/classical"
	"github.com/cipherkit/cipherkit-go/internal/numtheory"
	"github.com/cipherkit/cipherkit-go/internal/textbook"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidArgument is matched by every input validation failure.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDecoding is returned when decrypted bytes are not valid text.
	ErrDecoding = errors.New("decrypted data is not valid UTF-8")

	// ErrEmptyKey is returned when a Vigenère key is empty.
	ErrEmptyKey = classical.ErrEmptyKey

	// ErrNotPrime is returned when p or q is not prime.
	ErrNotPrime = textbook.ErrNotPrime

	// ErrPrimeTooSmall is returned when p or q does not exceed the minimum.
	ErrPrimeTooSmall = textbook.ErrPrimeTooSmall

	// ErrEqualPrimes is returned when p equals q.
	ErrEqualPrimes = textbook.ErrEqualPrimes

	// ErrExponentSearch is returned when the random source never produced a
	// public exponent coprime with phi.
	ErrExponentSearch = textbook.ErrExponentSearch

	// ErrInvalidRSAKey is returned when an RSA key is nil or has a missing or
	// non-positive component.
	ErrInvalidRSAKey = textbook.ErrInvalidKey

	// ErrModulusTooSmall is returned when n < 256, leaving no room for a
	// single byte per block.
	ErrModulusTooSmall = textbook.ErrModulusTooSmall

	// ErrBlockOutOfRange is returned when a ciphertext block is not in [0, n).
	ErrBlockOutOfRange = textbook.ErrBlockOutOfRange

	// ErrMalformedBlocks is returned when a block list cannot be parsed.
	ErrMalformedBlocks = errors.New("malformed ciphertext block list")

	// ErrNoPrimeInRange is returned when a random prime range holds fewer
	// than two primes.
	ErrNoPrimeInRange = numtheory.ErrNoPrimeInRange
)

// CipherkitError is implemented by all errors defined in this package.
type CipherkitError interface {
	error
	CipherkitError() // marker method
}

// InvalidArgumentError reports an argument rejected before any work was done.
type InvalidArgumentError struct {
	// Argument names the offending input, e.g. "p", "key" or "blocks[2]".
	Argument string
	Err      error
}

func (e *InvalidArgumentError) Error() string {
	if e.Argument == "" {
		return fmt.Sprintf("invalid argument: %v", e.Err)
	}
	return fmt.Sprintf("invalid argument %s: %v", e.Argument, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// CipherkitError implements the CipherkitError interface.
func (e *InvalidArgumentError) CipherkitError() {}

// DecodingError reports decrypted output that could not be read as text.
type DecodingError struct {
	// Length is the number of decrypted bytes.
	Length int
	Err    error
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding %d decrypted bytes: %v", e.Length, e.Err)
	}
	return fmt.Sprintf("decoding %d decrypted bytes failed", e.Length)
}

// Unwrap returns the underlying error.
func (e *DecodingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecodingError) Is(target error) bool {
	return target == ErrDecoding
}

// CipherkitError implements the CipherkitError interface.
func (e *DecodingError) CipherkitError() {}

// wrapError converts internal errors to public errors so that errors.Is()
// checks against ErrInvalidArgument work. argument names the input blamed
// when the internal error does not name one itself.
func wrapError(argument string, err error) error {
	if err == nil {
		return nil
	}

	var argErr *textbook.ArgError
	if errors.As(err, &argErr) {
		return &InvalidArgumentError{Argument: argErr.Name, Err: argErr.Err}
	}

	switch {
	case errors.Is(err, classical.ErrEmptyKey),
		errors.Is(err, textbook.ErrInvalidKey),
		errors.Is(err, textbook.ErrModulusTooSmall),
		errors.Is(err, numtheory.ErrInvalidRange),
		errors.Is(err, numtheory.ErrNoPrimeInRange):
		return &InvalidArgumentError{Argument: argument, Err: err}
	}

	return err
}
