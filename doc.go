// Package cipherkit provides three classical and textbook ciphers for
// teaching: the Caesar shift, the Vigenère polyalphabetic substitution and an
// unpadded RSA built from user-supplied primes.
//
// Every function is stateless. Keys are plain values created by the caller
// and passed into each call; nothing is cached or persisted.
//
// Basic usage:
//
//	secret := cipherkit.CaesarEncrypt("Attack at dawn", 3)
//	plain := cipherkit.CaesarDecrypt(secret, 3)
//
//	secret, err := cipherkit.VigenereEncrypt("Attack at dawn", "LEMON")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pub, priv, err := cipherkit.RSAGenerateKeys(big.NewInt(61), big.NewInt(53))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blocks, err := cipherkit.RSAEncrypt("Hi!", pub)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cipherkit.FormatBlocks(blocks))
//	text, err := cipherkit.RSADecrypt(blocks, priv)
//
// # Errors
//
// Bad input fails with an [*InvalidArgumentError], which matches
// [ErrInvalidArgument] as well as a more specific sentinel such as
// [ErrEmptyKey] or [ErrNotPrime]. Decrypted bytes that are not valid UTF-8
// fail with a [*DecodingError] matching [ErrDecoding], which usually means the
// wrong private key or a corrupted block list. Nothing in this package
// prints diagnostics.
//
// # Security
//
// None of these ciphers protect real data. The RSA variant has no padding,
// accepts tiny primes and does not run in constant time.
package cipherkit
