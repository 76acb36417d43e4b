package numtheory

import (
	"math/big"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	six   = big.NewInt(6)
)

// IsPrime reports whether n is prime using trial division up to √n.
// Multiples of 2 and 3 are skipped by testing only candidates of the form
// 6k±1.
func IsPrime(n *big.Int) bool {
	if n == nil || n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(three) <= 0 {
		return true
	}

	r := new(big.Int)
	if r.Mod(n, two).Sign() == 0 || r.Mod(n, three).Sign() == 0 {
		return false
	}

	i := big.NewInt(5)
	j := new(big.Int)
	sq := new(big.Int)
	for sq.Mul(i, i).Cmp(n) <= 0 {
		if r.Mod(n, i).Sign() == 0 {
			return false
		}
		if r.Mod(n, j.Add(i, two)).Sign() == 0 {
			return false
		}
		i.Add(i, six)
	}
	return true
}

// GCD computes the greatest common divisor of a and b with Euclid's
// algorithm. The result is non-negative.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)

	for y.Sign() != 0 {
		x, y = y, new(big.Int).Mod(x, y)
	}
	return x
}

// ExtendedGCD returns g, x, y such that a*x + b*y = g = gcd(a, b).
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	for r.Sign() != 0 {
		q.Quo(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
	}

	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}
	return oldR, oldS, oldT
}

// ModInverse returns d in [0, m) such that a*d ≡ 1 (mod m).
// It fails with ErrNoInverse when m <= 1 or gcd(a, m) != 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Cmp(one) <= 0 {
		return nil, ErrNoInverse
	}

	g, x, _ := ExtendedGCD(new(big.Int).Mod(a, m), m)
	if g.Cmp(one) != 0 {
		return nil, ErrNoInverse
	}

	// Mod yields the Euclidean (non-negative) residue.
	return x.Mod(x, m), nil
}

// ModPow computes base^exp mod m by left-to-right square-and-multiply,
// reducing after every step so intermediates stay below m².
// exp must be non-negative and m positive.
func ModPow(base, exp, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	if exp.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	if m.Cmp(one) == 0 {
		return big.NewInt(0), nil
	}

	b := new(big.Int).Mod(base, m)
	result := big.NewInt(1)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, m)
		if exp.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, m)
		}
	}
	return result, nil
}
