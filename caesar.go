package cipherkit

import "github.com/cipherkit/cipherkit-go/internal/classical"

// CaesarEncrypt shifts every ASCII letter of text forward by shift positions,
// wrapping around the alphabet and preserving case. Any shift is accepted and
// reduced modulo 26; all other characters are copied unchanged.
func CaesarEncrypt(text string, shift int) string {
	return classical.CaesarShift(text, shift)
}

// CaesarDecrypt reverses CaesarEncrypt with the same shift.
func CaesarDecrypt(text string, shift int) string {
	// Reduce before negating so math.MinInt cannot overflow.
	return classical.CaesarShift(text, -(shift % classical.AlphabetSize))
}
