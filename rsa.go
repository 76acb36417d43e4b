package cipherkit

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"

	"github.com/cipherkit/cipherkit-go/internal/numtheory"
	"github.com/cipherkit/cipherkit-go/internal/textbook"
)

// FingerprintSize is the number of BLAKE2b-256 bytes kept in a fingerprint.
const FingerprintSize = 8

// PublicKey is the public half (e, n) of an RSA key pair.
type PublicKey struct {
	E *big.Int
	N *big.Int
}

// PrivateKey is the private half (d, n) of an RSA key pair.
type PrivateKey struct {
	D *big.Int
	N *big.Int
}

// String renders the key as (e, n).
func (k *PublicKey) String() string {
	return fmt.Sprintf("(%s, %s)", k.E, k.N)
}

// String renders the key as (d, n).
func (k *PrivateKey) String() string {
	return fmt.Sprintf("(%s, %s)", k.D, k.N)
}

// BlockSize returns the number of message bytes carried by each ciphertext
// block under this key.
func (k *PublicKey) BlockSize() int {
	return BlockSize(k.N)
}

// Fingerprint returns a short hex digest identifying the key. It hashes the
// length-prefixed big-endian encodings of e and n with BLAKE2b-256 and keeps
// the first FingerprintSize bytes. A malformed key has an empty fingerprint.
func (k *PublicKey) Fingerprint() string {
	if k == nil || k.E == nil || k.N == nil {
		return ""
	}

	var buf []byte
	for _, v := range []*big.Int{k.E, k.N} {
		b := v.Bytes()
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(b)))
		buf = append(buf, b...)
	}

	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:FingerprintSize])
}

// BlockSize returns floor((bitLen(n) - 1) / 8), the number of message bytes
// per block for modulus n. It is 0 when n is too small to be usable.
func BlockSize(n *big.Int) int {
	return textbook.BlockSize(n)
}

// RSAGenerateKeys derives a key pair from the primes p and q.
//
// Both must be prime, greater than the minimum (DefaultMinPrime unless
// WithMinPrime is given) and distinct. The public exponent e is drawn
// uniformly from (1, phi) until it is coprime with phi, and d is its inverse
// modulo phi. Invalid primes fail with an *InvalidArgumentError; the function
// never retries on its own.
func RSAGenerateKeys(p, q *big.Int, opts ...KeyOption) (*PublicKey, *PrivateKey, error) {
	cfg := defaultKeyConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	key, err := textbook.GenerateKey(p, q, cfg.minPrime, cfg.rand)
	if err != nil {
		return nil, nil, wrapError("", err)
	}

	return &PublicKey{E: key.E, N: key.N},
		&PrivateKey{D: key.D, N: new(big.Int).Set(key.N)},
		nil
}

// RSARandomPrimes picks two distinct primes in (min, max] from r, for use
// with RSAGenerateKeys. A nil r uses crypto/rand.Reader.
func RSARandomPrimes(r io.Reader, min, max int64) (p, q *big.Int, err error) {
	if r == nil {
		r = rand.Reader
	}
	if min >= max {
		return nil, nil, &InvalidArgumentError{
			Argument: "max",
			Err:      fmt.Errorf("%w: (%d, %d]", numtheory.ErrInvalidRange, min, max),
		}
	}

	lo := big.NewInt(min)
	lo.Add(lo, big.NewInt(1))
	p, q, err = textbook.RandomPrimePair(r, lo, big.NewInt(max))
	if err != nil {
		return nil, nil, wrapError("max", err)
	}
	return p, q, nil
}

// RSAEncrypt encrypts the UTF-8 bytes of text with the public key and returns
// one integer per block.
func RSAEncrypt(text string, pub *PublicKey) ([]*big.Int, error) {
	return RSAEncryptBytes([]byte(text), pub)
}

// RSAEncryptBytes encrypts msg with the public key. The message is split into
// chunks of pub.BlockSize() bytes and each chunk m becomes m^e mod n.
func RSAEncryptBytes(msg []byte, pub *PublicKey) ([]*big.Int, error) {
	if pub == nil {
		return nil, &InvalidArgumentError{Argument: "publicKey", Err: ErrInvalidRSAKey}
	}

	blocks, err := textbook.Encrypt(msg, pub.E, pub.N)
	if err != nil {
		return nil, wrapError("publicKey", err)
	}
	return blocks, nil
}

// RSADecryptBytes decrypts a block list with the private key. Every block
// must lie in [0, n). Each block yields its minimal big-endian bytes and
// trailing zero bytes of the result are dropped, so zero bytes at the start of
// a chunk or the end of the message are lost.
func RSADecryptBytes(blocks []*big.Int, priv *PrivateKey) ([]byte, error) {
	if priv == nil {
		return nil, &InvalidArgumentError{Argument: "privateKey", Err: ErrInvalidRSAKey}
	}

	out, err := textbook.Decrypt(blocks, priv.D, priv.N)
	if err != nil {
		return nil, wrapError("privateKey", err)
	}
	return out, nil
}

// RSADecrypt decrypts a block list and returns the message as text. If the
// decrypted bytes are not valid UTF-8 it fails with a *DecodingError, which
// usually means the block list or the key is wrong.
func RSADecrypt(blocks []*big.Int, priv *PrivateKey) (string, error) {
	out, err := RSADecryptBytes(blocks, priv)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", &DecodingError{Length: len(out), Err: ErrDecoding}
	}
	return string(out), nil
}
