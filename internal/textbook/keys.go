package textbook

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cipherkit/cipherkit-go/internal/numtheory"
)

const (
	// DefaultMinPrime is the value p and q must each exceed. It keeps the
	// modulus large enough for one byte per block in most cases; it is not a
	// security bound.
	DefaultMinPrime = 10

	// MaxExponentAttempts bounds the rejection sampling of e.
	MaxExponentAttempts = 4096
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Key holds every value derived during key generation. E and N form the
// public key, D and N the private key.
type Key struct {
	P, Q *big.Int
	N    *big.Int
	Phi  *big.Int
	E    *big.Int
	D    *big.Int
}

// ValidatePrime checks a single prime candidate against minPrime.
func ValidatePrime(name string, v, minPrime *big.Int) error {
	if v == nil || !numtheory.IsPrime(v) {
		return argError(name, ErrNotPrime)
	}
	if minPrime != nil && v.Cmp(minPrime) <= 0 {
		return argError(name, fmt.Errorf("%w: %s must be greater than %s", ErrPrimeTooSmall, v, minPrime))
	}
	return nil
}

// GenerateKey derives an RSA key from p and q. Both must be prime and
// greater than minPrime, and they must differ. The public exponent is drawn
// from r.
func GenerateKey(p, q, minPrime *big.Int, r io.Reader) (*Key, error) {
	if err := ValidatePrime("p", p, minPrime); err != nil {
		return nil, err
	}
	if err := ValidatePrime("q", q, minPrime); err != nil {
		return nil, err
	}
	if p.Cmp(q) == 0 {
		return nil, argError("q", ErrEqualPrimes)
	}

	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, one),
		new(big.Int).Sub(q, one),
	)

	e, err := chooseExponent(r, phi)
	if err != nil {
		return nil, err
	}

	d, err := numtheory.ModInverse(e, phi)
	if err != nil {
		// Unreachable for e coprime with phi > 1.
		return nil, fmt.Errorf("compute private exponent: %w", err)
	}

	return &Key{
		P:   new(big.Int).Set(p),
		Q:   new(big.Int).Set(q),
		N:   n,
		Phi: phi,
		E:   e,
		D:   d,
	}, nil
}

// chooseExponent samples e uniformly from [2, phi-1] until gcd(e, phi) = 1.
func chooseExponent(r io.Reader, phi *big.Int) (*big.Int, error) {
	hi := new(big.Int).Sub(phi, one)
	if hi.Cmp(two) < 0 {
		return nil, ErrExponentSearch
	}

	for attempt := 0; attempt < MaxExponentAttempts; attempt++ {
		e, err := numtheory.RandRange(r, two, hi)
		if err != nil {
			return nil, fmt.Errorf("sample public exponent: %w", err)
		}
		if numtheory.GCD(e, phi).Cmp(one) == 0 {
			return e, nil
		}
	}
	return nil, ErrExponentSearch
}

// RandomPrimePair draws two distinct primes from [lo, hi].
func RandomPrimePair(r io.Reader, lo, hi *big.Int) (p, q *big.Int, err error) {
	p, err = numtheory.RandomPrime(r, lo, hi)
	if err != nil {
		return nil, nil, err
	}

	for attempt := 0; attempt < MaxExponentAttempts; attempt++ {
		q, err = numtheory.RandomPrime(r, lo, hi)
		if err != nil {
			return nil, nil, err
		}
		if q.Cmp(p) != 0 {
			return p, q, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: only one prime in [%s, %s]", numtheory.ErrNoPrimeInRange, lo, hi)
}
