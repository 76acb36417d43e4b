// Package textbook implements unpadded ("textbook") RSA over caller-supplied
// primes.
//
// # Key Derivation
//
// [GenerateKey] validates two distinct primes p and q above a minimum size
// and derives:
//
//   - n = p*q, the modulus shared by both halves of the key
//   - phi = (p-1)(q-1), Euler's totient of n
//   - e, drawn uniformly from (1, phi) until gcd(e, phi) = 1
//   - d = e^-1 mod phi
//
// The exponent search reads from an [io.Reader] supplied by the caller, so
// tests can pass a seeded source and get reproducible keys.
//
// # Block Layout
//
// A message is split into blocks of [BlockSize] bytes, where the block size
// is the largest byte count whose integers are always below n. Each block is
// read as a big-endian unsigned integer m and encrypted as c = m^e mod n.
// Decryption inverts each block, writes it back in minimal big-endian form
// and strips trailing zero bytes from the concatenation.
//
// # Security Notes
//
// There is no padding, the arithmetic is not constant time, and the default
// minimum prime size only stops the most degenerate inputs. This package is
// for teaching the mechanics of RSA; it does not protect real data.
package textbook
