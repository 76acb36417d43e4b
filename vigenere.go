package cipherkit

import "github.com/cipherkit/cipherkit-go/internal/classical"

// VigenereEncrypt encrypts text with a repeating key. Each key letter shifts
// one message letter by its alphabet position (a/A = 0 ... z/Z = 25). Any
// other key rune shifts by its lowercased code point minus 'a', modulo 26.
// Non-letters in text are copied unchanged and do not consume a key rune.
//
// An empty key fails with an *InvalidArgumentError matching ErrEmptyKey.
func VigenereEncrypt(text, key string) (string, error) {
	out, err := classical.Vigenere(text, key, false)
	if err != nil {
		return "", wrapError("key", err)
	}
	return out, nil
}

// VigenereDecrypt reverses VigenereEncrypt with the same key.
func VigenereDecrypt(text, key string) (string, error) {
	out, err := classical.Vigenere(text, key, true)
	if err != nil {
		return "", wrapError("key", err)
	}
	return out, nil
}
