package ntt

import (
	"math/bits"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// zeroSlot stands in for an empty operand.
var zeroSlot = []uint64{0}

// ConvolutionSize returns the transform length used to convolve operands
// of la and lb slots: the smallest power of two >= la+lb.
func ConvolutionSize(la, lb int) int {
	la, lb = max(la, 1), max(lb, 1)
	return 1 << bits.Len(uint(la+lb-1))
}

// Convolve returns the acyclic convolution of a and b, truncated to
// len(a)+len(b) coefficients. Empty operands are treated as a single zero
// slot.
//
// Coefficients are exact as long as min(len(a), len(b))·max(a)·max(b) stays
// below Modulus, which holds for base-100000 digits at every supported size.
// The table lock is held for the whole call.
//
// Returns:
//   - []uint64: The raw convolution coefficients, not carry-propagated.
//   - error: A *apperrors.SizeExceededError if the transform would exceed MaxSize.
func (t *Table) Convolve(a, b []uint64) ([]uint64, error) {
	if len(a) == 0 {
		a = zeroSlot
	}
	if len(b) == 0 {
		b = zeroSlot
	}
	total := len(a) + len(b)
	n := ConvolutionSize(len(a), len(b))
	if n > t.MaxSize() {
		return nil, &apperrors.SizeExceededError{Requested: n, Max: t.MaxSize()}
	}
	order := bits.TrailingZeros(uint(n))
	square := len(a) == len(b) && &a[0] == &b[0]

	start := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureLevel(order); err != nil {
		return nil, err
	}

	fa := acquireBuffer(n)
	defer releaseBuffer(fa)
	for i, v := range a {
		fa[i] = v % Modulus
	}
	t.forward(fa)

	fb := fa
	if !square {
		fb = acquireBuffer(n)
		defer releaseBuffer(fb)
		for i, v := range b {
			fb[i] = v % Modulus
		}
		t.forward(fb)
	}

	if err := PointwiseMultiply(fa, fb); err != nil {
		return nil, err
	}
	t.inverse(fa)
	if err := Scale(fa, n); err != nil {
		return nil, err
	}

	out := make([]uint64, total)
	copy(out, fa[:total])
	if t.observer != nil {
		t.observer.ObserveConvolution(n, time.Since(start))
	}
	return out, nil
}
