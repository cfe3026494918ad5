// Table and buffer pre-warming ahead of a known workload.

package ntt

import "math/bits"

// PreWarm populates the level needed to multiply operands of up to
// maxOperandSlots slots each and seeds the buffer pool for that size.
//
// The number of pooled buffers grows with the transform order:
//   - order < 16: 2 buffers
//   - 16 ≤ order < 20: 4 buffers
//   - order ≥ 20: 6 buffers
//
// Parameters:
//   - maxOperandSlots: The largest expected operand length in slots.
//
// Sizes beyond MaxSize are clamped to the largest supported level.
func (t *Table) PreWarm(maxOperandSlots int) error {
	n := ConvolutionSize(maxOperandSlots, maxOperandSlots)
	if n > t.MaxSize() {
		n = t.MaxSize()
	}
	order := bits.TrailingZeros(uint(n))
	if err := t.EnsureLevel(order); err != nil {
		return err
	}

	numBuffers := 2
	if order >= 20 {
		numBuffers = 6
	} else if order >= 16 {
		numBuffers = 4
	}
	idx := bufferPoolIndex(n)
	if idx < 0 {
		return nil
	}
	for i := 0; i < numBuffers; i++ {
		bufferPools[idx].Put(make([]uint64, bufferSizes[idx]))
	}
	t.logger.Debug().
		Int("order", order).
		Int("buffers", numBuffers).
		Msg("pre-warmed transform table")
	return nil
}

// EnsureWarmed runs PreWarm once per table. Later calls return nil
// immediately, whatever size they request. Safe for concurrent use.
func (t *Table) EnsureWarmed(maxOperandSlots int) error {
	if !t.warmed.CompareAndSwap(false, true) {
		return nil
	}
	if err := t.PreWarm(maxOperandSlots); err != nil {
		t.warmed.Store(false)
		return err
	}
	return nil
}
