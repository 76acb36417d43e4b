// Package numtheory provides the number-theoretic routines behind the
// textbook RSA implementation: trial-division primality testing, Euclid's
// greatest common divisor, modular inversion, square-and-multiply modular
// exponentiation and uniform sampling of integers from a caller-supplied
// random source.
//
// The routines operate on [math/big.Int] values and never modify their
// arguments. They are written for clarity over speed: [IsPrime] is only
// practical for small inputs, and nothing here runs in constant time.
package numtheory
