package bigint

import (
	"math/rand"

	"github.com/agbru/bigcalc/internal/digits"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Uint is an arbitrary-precision non-negative integer. The zero value is 0.
// Values are immutable: every operation returns a fresh result.
type Uint struct {
	d digits.Store
}

// NewUint returns v as a Uint.
func NewUint(v uint64) Uint { return Uint{d: digits.FromUint64(v)} }

// UintFromSlots builds a Uint from base-100000 slots, least-significant
// first. The slots are copied and normalized.
//
// Returns:
//   - Uint: The value.
//   - error: A ValidationError if any slot is >= 100000.
func UintFromSlots(slots []uint64) (Uint, error) {
	d := digits.Normalize(digits.Store(slots).Clone())
	if err := d.Validate(); err != nil {
		return Uint{}, err
	}
	return Uint{d: d}, nil
}

// splitSign strips one leading '+' or '-' and reports whether it was '-'.
func splitSign(text string) (string, bool) {
	if text == "" {
		return text, false
	}
	switch text[0] {
	case '-':
		return text[1:], true
	case '+':
		return text[1:], false
	}
	return text, false
}

// ParseUint parses an optional '+' followed by decimal digits.
//
// A leading '-' is only accepted when the magnitude is zero, so "-0" parses
// as 0 while "-5" is rejected with a ValidationError. Malformed digit groups
// are rejected with a *apperrors.MalformedDigitGroupError.
func ParseUint(text string) (Uint, error) {
	body, negative := splitSign(text)
	d, err := digits.Parse(body)
	if err != nil {
		return Uint{}, err
	}
	if negative && !d.IsZero() {
		return Uint{}, apperrors.ValidationError{Field: "sign", Message: "unsigned value cannot be negative: " + text}
	}
	return Uint{d: d}, nil
}

// ParseUintLenient parses text the permissive way: any sign is dropped,
// malformed five-digit groups count as zero and empty input is zero.
// It never fails.
func ParseUintLenient(text string) Uint {
	body, _ := splitSign(text)
	return Uint{d: digits.ParseLenient(body)}
}

// Random returns a value of exactly slots base-100000 slots drawn from r.
// The most-significant slot is never zero, so the result has between
// 5·slots-4 and 5·slots decimal digits. slots <= 0 yields zero.
func Random(r *rand.Rand, slots int) Uint {
	if slots <= 0 {
		return Uint{d: digits.Zero()}
	}
	d := make(digits.Store, slots)
	for i := range d {
		d[i] = uint64(r.Int63n(digits.Radix))
	}
	d[slots-1] = 1 + uint64(r.Int63n(digits.Radix-1))
	return Uint{d: d}
}

func (u Uint) store() digits.Store {
	if len(u.d) == 0 {
		return digits.Zero()
	}
	return u.d
}

// String returns the canonical decimal representation.
func (u Uint) String() string { return u.store().String() }

// IsZero reports whether u == 0.
func (u Uint) IsZero() bool { return u.d.IsZero() }

// Cmp compares u and v and returns -1, 0 or +1.
func (u Uint) Cmp(v Uint) int { return digits.Cmp(u.store(), v.store()) }

// Slots returns a copy of the base-100000 slots, least-significant first.
func (u Uint) Slots() []uint64 { return []uint64(u.store().Clone()) }

// DecimalLen returns the number of decimal digits in u.
func (u Uint) DecimalLen() int { return u.store().DecimalLen() }
