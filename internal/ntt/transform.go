package ntt

import (
	"math/bits"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/modarith"
)

// checkSize validates a transform length against the table and returns its
// order.
func (t *Table) checkSize(size, inputLen int) (int, error) {
	if size <= 0 || size&(size-1) != 0 {
		return 0, apperrors.ValidationError{Field: "size", Message: "transform size must be a positive power of two"}
	}
	if size > t.MaxSize() {
		return 0, &apperrors.SizeExceededError{Requested: size, Max: t.MaxSize()}
	}
	if inputLen > size {
		return 0, apperrors.ValidationError{Field: "size", Message: "input longer than transform size"}
	}
	return bits.TrailingZeros(uint(size)), nil
}

// padded copies data, reduced modulo Modulus, into a fresh buffer of the
// given size.
func padded(data []uint64, size int) []uint64 {
	out := make([]uint64, size)
	for i, v := range data {
		out[i] = v % Modulus
	}
	return out
}

// Forward returns the transform of data zero-padded to size. The result is
// in bit-reversed order, which is what Inverse expects as input.
//
// size must be a power of two no larger than MaxSize, otherwise a
// *apperrors.SizeExceededError or ValidationError is returned.
func (t *Table) Forward(data []uint64, size int) ([]uint64, error) {
	order, err := t.checkSize(size, len(data))
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLevel(order); err != nil {
		return nil, err
	}
	out := padded(data, size)
	t.forward(out)
	return out, nil
}

// Inverse returns the un-normalized inverse transform of bit-reversed data
// zero-padded to size. Callers complete the inverse with Scale.
func (t *Table) Inverse(data []uint64, size int) ([]uint64, error) {
	order, err := t.checkSize(size, len(data))
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLevel(order); err != nil {
		return nil, err
	}
	out := padded(data, size)
	t.inverse(out)
	return out, nil
}

// forward runs decimation-in-frequency butterflies in place. len(a) must be a
// populated level and t.mu must be held.
func (t *Table) forward(a []uint64) {
	n := len(a)
	for half := n >> 1; half >= 1; half >>= 1 {
		stride := 1 << (t.maxLog - bits.Len(uint(half)))
		for start := 0; start < n; start += half << 1 {
			lo := a[start : start+half]
			hi := a[start+half : start+2*half]
			for j := range lo {
				u, v := lo[j], hi[j]
				lo[j] = modarith.AddMod(u, v, Modulus)
				hi[j] = modarith.MulMod(modarith.SubMod(u, v, Modulus), t.roots[j*stride], Modulus)
			}
		}
	}
}

// inverse runs decimation-in-time butterflies in place with the inverse
// roots w^-j = -w^(half-j). len(a) must be a populated level and t.mu must
// be held.
func (t *Table) inverse(a []uint64) {
	n := len(a)
	for half := 1; half < n; half <<= 1 {
		stride := 1 << (t.maxLog - bits.Len(uint(half)))
		for start := 0; start < n; start += half << 1 {
			lo := a[start : start+half]
			hi := a[start+half : start+2*half]
			for j := range lo {
				v := hi[j]
				if j > 0 {
					v = modarith.MulMod(v, Modulus-t.roots[(half-j)*stride], Modulus)
				}
				u := lo[j]
				lo[j] = modarith.AddMod(u, v, Modulus)
				hi[j] = modarith.SubMod(u, v, Modulus)
			}
		}
	}
}

// PointwiseMultiply multiplies a by b element-wise modulo Modulus, storing
// the products in a. Both slices must already hold transformed values of
// the same length.
func PointwiseMultiply(a, b []uint64) error {
	if len(a) != len(b) {
		return &apperrors.LengthMismatchError{Left: len(a), Right: len(b)}
	}
	for i := range a {
		a[i] = modarith.MulMod(a[i], b[i], Modulus)
	}
	return nil
}

// Scale multiplies every element of data by size⁻¹ modulo Modulus,
// completing an inverse transform of length size.
func Scale(data []uint64, size int) error {
	inv, err := modarith.InvMod(uint64(size)%Modulus, Modulus)
	if err != nil {
		return err
	}
	for i := range data {
		data[i] = modarith.MulMod(data[i], inv, Modulus)
	}
	return nil
}
