package textbook

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/cipherkit/cipherkit-go/internal/numtheory"
)

// BlockSize returns the number of message bytes per block for modulus n:
// floor((bitLen(n) - 1) / 8). Every integer of that many bytes is below n.
// It returns 0 for a nil or non-positive modulus.
func BlockSize(n *big.Int) int {
	if n == nil || n.Sign() <= 0 {
		return 0
	}
	return (n.BitLen() - 1) / 8
}

// BlockCount returns how many blocks a message of msgLen bytes occupies.
func BlockCount(msgLen, blockSize int) int {
	if blockSize <= 0 || msgLen <= 0 {
		return 0
	}
	return (msgLen + blockSize - 1) / blockSize
}

func validateComponents(exp, n *big.Int) error {
	if exp == nil || exp.Sign() <= 0 {
		return fmt.Errorf("%w: exponent must be positive", ErrInvalidKey)
	}
	if n == nil || n.Cmp(one) <= 0 {
		return fmt.Errorf("%w: modulus must be greater than 1", ErrInvalidKey)
	}
	return nil
}

// Encrypt splits msg into BlockSize(n) byte chunks and raises each to e mod n.
func Encrypt(msg []byte, e, n *big.Int) ([]*big.Int, error) {
	if err := validateComponents(e, n); err != nil {
		return nil, err
	}

	size := BlockSize(n)
	if size == 0 {
		return nil, fmt.Errorf("%w: n = %s", ErrModulusTooSmall, n)
	}

	blocks := make([]*big.Int, 0, BlockCount(len(msg), size))
	for start := 0; start < len(msg); start += size {
		end := min(start+size, len(msg))

		m := new(big.Int).SetBytes(msg[start:end])
		c, err := numtheory.ModPow(m, e, n)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, c)
	}
	return blocks, nil
}

// Decrypt raises each block to d mod n and concatenates the minimal
// big-endian encodings, discarding trailing zero bytes.
func Decrypt(blocks []*big.Int, d, n *big.Int) ([]byte, error) {
	if err := validateComponents(d, n); err != nil {
		return nil, err
	}

	var out []byte
	for i, c := range blocks {
		if c == nil || c.Sign() < 0 || c.Cmp(n) >= 0 {
			return nil, argError(fmt.Sprintf("blocks[%d]", i), ErrBlockOutOfRange)
		}

		m, err := numtheory.ModPow(c, d, n)
		if err != nil {
			return nil, err
		}
		out = append(out, m.Bytes()...)
	}
	return bytes.TrimRight(out, "\x00"), nil
}
