package numtheory

import (
	"io"
	"math/big"
)

// maxSampleAttempts bounds rejection sampling in RandInt. Each draw is
// accepted with probability above one half, so an honest source essentially
// never reaches it.
const maxSampleAttempts = 128

// RandInt returns a uniform random integer in [0, max) read from r.
// It draws just enough bytes to cover max-1, masks the excess high bits and
// rejects values that are still too large.
func RandInt(r io.Reader, max *big.Int) (*big.Int, error) {
	if max == nil || max.Sign() <= 0 {
		return nil, ErrInvalidRange
	}

	n := new(big.Int).Sub(max, one)
	bitLen := n.BitLen()
	if bitLen == 0 {
		return new(big.Int), nil
	}

	k := (bitLen + 7) / 8
	b := uint(bitLen % 8)
	if b == 0 {
		b = 8
	}

	buf := make([]byte, k)
	v := new(big.Int)
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		buf[0] &= uint8(int(1<<b) - 1)

		v.SetBytes(buf)
		if v.Cmp(max) < 0 {
			return v, nil
		}
	}
	return nil, ErrSamplingFailed
}

// RandRange returns a uniform random integer in the closed interval [lo, hi].
func RandRange(r io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if lo == nil || hi == nil || lo.Cmp(hi) > 0 {
		return nil, ErrInvalidRange
	}

	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one)

	v, err := RandInt(r, span)
	if err != nil {
		return nil, err
	}
	return v.Add(v, lo), nil
}

// RandomPrime returns a prime in [lo, hi]. It starts from a uniform random
// point and scans upward, wrapping around to lo, so every prime in the range
// is reachable.
func RandomPrime(r io.Reader, lo, hi *big.Int) (*big.Int, error) {
	start, err := RandRange(r, lo, hi)
	if err != nil {
		return nil, err
	}

	c := new(big.Int).Set(start)
	for {
		if IsPrime(c) {
			return c, nil
		}
		c.Add(c, one)
		if c.Cmp(hi) > 0 {
			c.Set(lo)
		}
		if c.Cmp(start) == 0 {
			return nil, ErrNoPrimeInRange
		}
	}
}
