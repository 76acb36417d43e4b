package numtheory

import "errors"

var (
	// ErrNoInverse is returned when a modular inverse does not exist, either
	// because the operands share a factor or the modulus is not greater than 1.
	ErrNoInverse = errors.New("modular inverse does not exist")

	// ErrInvalidModulus is returned when a modulus is nil or not positive.
	ErrInvalidModulus = errors.New("modulus must be positive")

	// ErrNegativeExponent is returned by ModPow for a negative exponent.
	ErrNegativeExponent = errors.New("exponent must be non-negative")

	// ErrSamplingFailed is returned when the random source keeps producing
	// values outside the requested range.
	ErrSamplingFailed = errors.New("random sampling did not converge")

	// ErrInvalidRange is returned when a sampling range is empty.
	ErrInvalidRange = errors.New("empty sampling range")

	// ErrNoPrimeInRange is returned when a prime search exhausts its range.
	ErrNoPrimeInRange = errors.New("no prime in range")
)
