package cipherkit

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// FormatBlocks renders a block list as "[c1, c2, ...]". The output is
// accepted by ParseBlocks.
func FormatBlocks(blocks []*big.Int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range blocks {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}

// ParseBlocks reads a block list written as decimal integers separated by
// commas and/or whitespace, optionally enclosed in square brackets.
// It fails with an *InvalidArgumentError matching ErrMalformedBlocks when a
// token is not a non-negative integer or a bracket is unmatched. Range
// checks against a modulus happen during decryption.
func ParseBlocks(s string) ([]*big.Int, error) {
	s = strings.TrimSpace(s)

	bracketed := strings.HasPrefix(s, "[")
	if bracketed != strings.HasSuffix(s, "]") {
		return nil, &InvalidArgumentError{
			Argument: "blocks",
			Err:      fmt.Errorf("%w: unbalanced brackets", ErrMalformedBlocks),
		}
	}
	if bracketed {
		s = s[1 : len(s)-1]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	blocks := make([]*big.Int, 0, len(fields))
	for i, f := range fields {
		v, ok := new(big.Int).SetString(f, 10)
		if !ok || v.Sign() < 0 {
			return nil, &InvalidArgumentError{
				Argument: fmt.Sprintf("blocks[%d]", i),
				Err:      fmt.Errorf("%w: %q is not a non-negative integer", ErrMalformedBlocks, f),
			}
		}
		blocks = append(blocks, v)
	}
	return blocks, nil
}
