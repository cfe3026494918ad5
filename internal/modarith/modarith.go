// Package modarith provides the 64-bit modular primitives used by the number
// theoretic transform: multiplication, exponentiation and inversion modulo a
// word-sized modulus. Products are formed in 128 bits so that moduli up to
// 2^64-1 never overflow before reduction.
package modarith

import (
	"math/bits"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// MulMod returns a*b mod m. m must be non-zero.
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// AddMod returns a+b mod m for a, b < m.
func AddMod(a, b, m uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 || s >= m {
		s -= m
	}
	return s
}

// SubMod returns a-b mod m for a, b < m.
func SubMod(a, b, m uint64) uint64 {
	if a >= b {
		return a - b
	}
	return m - (b - a)
}

// PowMod computes base^exponent mod modulus by iterative square-and-multiply.
//
// An exponent of zero yields 1, reduced modulo modulus (so PowMod(x, 0, 1)
// is 0). modulus must be non-zero.
func PowMod(base, exponent, modulus uint64) uint64 {
	result := 1 % modulus
	base %= modulus
	for exponent > 0 {
		if exponent&1 == 1 {
			result = MulMod(result, base, modulus)
		}
		base = MulMod(base, base, modulus)
		exponent >>= 1
	}
	return result
}

// InvMod returns the multiplicative inverse of value modulo modulus in
// [0, modulus), computed with the extended Euclidean algorithm.
//
// Returns:
//   - uint64: x such that value*x ≡ 1 (mod modulus).
//   - error: *apperrors.NotInvertibleError when gcd(value, modulus) != 1 or
//     modulus < 2.
func InvMod(value, modulus uint64) (uint64, error) {
	if modulus < 2 {
		return 0, &apperrors.NotInvertibleError{Value: value, Modulus: modulus}
	}
	// Track Bézout coefficients modulo modulus so they never go negative.
	r0, r1 := modulus, value%modulus
	t0, t1 := uint64(0), uint64(1)
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		t0, t1 = t1, SubMod(t0, MulMod(q%modulus, t1, modulus), modulus)
	}
	if r0 != 1 {
		return 0, &apperrors.NotInvertibleError{Value: value, Modulus: modulus}
	}
	return t0, nil
}
