// Package classical implements the Caesar shift and Vigenère polyalphabetic
// substitution ciphers over the 26-letter Latin alphabet.
//
// Only ASCII letters are transformed. Case is preserved, and every other rune
// (digits, punctuation, whitespace, non-Latin scripts) is copied through
// unchanged, so output always has the same rune count as input.
package classical

import (
	"errors"
	"strings"
	"unicode"
)

// AlphabetSize is the number of letters each cipher rotates over.
const AlphabetSize = 26

// ErrEmptyKey is returned when a Vigenère key has no characters.
var ErrEmptyKey = errors.New("key must not be empty")

// mod26 reduces k to [0, 26) for any sign of k.
func mod26(k int) int {
	k %= AlphabetSize
	if k < 0 {
		k += AlphabetSize
	}
	return k
}

// shiftRune rotates an ASCII letter by k positions, which must already be in
// [0, 26). Other runes are returned unchanged.
func shiftRune(r rune, k int) rune {
	switch {
	case 'a' <= r && r <= 'z':
		return 'a' + rune((int(r-'a')+k)%AlphabetSize)
	case 'A' <= r && r <= 'Z':
		return 'A' + rune((int(r-'A')+k)%AlphabetSize)
	default:
		return r
	}
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// CaesarShift shifts every letter of text by shift positions.
func CaesarShift(text string, shift int) string {
	k := mod26(shift)
	if k == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(shiftRune(r, k))
	}
	return b.String()
}

// keyShifts converts a Vigenère key into per-position shifts. Every rune
// counts: a letter shifts by its alphabet position, any other rune by its
// lowercased code point minus 'a', reduced modulo 26.
func keyShifts(key string) ([]int, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	shifts := make([]int, 0, len(key))
	for _, r := range key {
		shifts = append(shifts, mod26(int(unicode.ToLower(r))-'a'))
	}
	return shifts, nil
}

// Vigenere applies the Vigenère cipher to text. It encrypts when decrypt is
// false and inverts the encryption otherwise. The key cursor advances only
// when a letter is transformed.
func Vigenere(text, key string, decrypt bool) (string, error) {
	shifts, err := keyShifts(key)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text))
	cursor := 0
	for _, r := range text {
		if !isLetter(r) {
			b.WriteRune(r)
			continue
		}

		k := shifts[cursor%len(shifts)]
		if decrypt {
			k = mod26(-k)
		}
		b.WriteRune(shiftRune(r, k))
		cursor++
	}
	return b.String(), nil
}
