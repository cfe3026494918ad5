package bigint

import (
	"github.com/agbru/bigcalc/internal/digits"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/ntt"
)

// Add returns a+b.
func Add(a, b Uint) Uint {
	x, y := a.store(), b.store()
	if len(x) < len(y) {
		x, y = y, x
	}
	out := make(digits.Store, len(x), len(x)+1)
	var carry uint64
	for i, v := range x {
		s := v + carry
		if i < len(y) {
			s += y[i]
		}
		if s >= digits.Radix {
			s -= digits.Radix
			carry = 1
		} else {
			carry = 0
		}
		out[i] = s
	}
	if carry != 0 {
		out = append(out, carry)
	}
	return Uint{d: out}
}

// Sub returns a-b.
//
// Returns:
//   - Uint: The difference, normalized.
//   - error: A *apperrors.NegativeResultError when b > a. The result is never
//     wrapped or truncated.
func Sub(a, b Uint) (Uint, error) {
	x, y := a.store(), b.store()
	if len(y) > len(x) {
		return Uint{}, &apperrors.NegativeResultError{Minuend: a.String(), Subtrahend: b.String()}
	}
	out := make(digits.Store, len(x))
	var borrow uint64
	for i, v := range x {
		sub := borrow
		if i < len(y) {
			sub += y[i]
		}
		if v >= sub {
			out[i] = v - sub
			borrow = 0
		} else {
			out[i] = v + digits.Radix - sub
			borrow = 1
		}
	}
	if borrow != 0 {
		return Uint{}, &apperrors.NegativeResultError{Minuend: a.String(), Subtrahend: b.String()}
	}
	return Uint{d: digits.Normalize(out)}, nil
}

// Mul returns a*b using the process-wide transform table.
func Mul(a, b Uint) (Uint, error) {
	return defaultCalculator.Mul(a, b)
}

// carry folds raw convolution coefficients into base-100000 slots.
func carry(coeffs []uint64) digits.Store {
	out := make(digits.Store, len(coeffs), len(coeffs)+2)
	var c uint64
	for i, v := range coeffs {
		v += c
		out[i] = v % digits.Radix
		c = v / digits.Radix
	}
	for c > 0 {
		out = append(out, c%digits.Radix)
		c /= digits.Radix
	}
	return digits.Normalize(out)
}

var defaultCalculator = &Calculator{}

// Calculator performs arithmetic against one transform table. The zero
// value uses ntt.Default(). A Calculator is safe for concurrent use;
// multiplications sharing a table are serialized by it.
type Calculator struct {
	table *ntt.Table
}

// NewCalculator returns a Calculator bound to table, or to the process-wide
// table when table is nil.
func NewCalculator(table *ntt.Table) *Calculator {
	return &Calculator{table: table}
}

// Table returns the transform table used for multiplication.
func (c *Calculator) Table() *ntt.Table {
	if c.table == nil {
		return ntt.Default()
	}
	return c.table
}

// Add returns a+b.
func (c *Calculator) Add(a, b Uint) Uint { return Add(a, b) }

// Sub returns a-b, or a *apperrors.NegativeResultError when b > a.
func (c *Calculator) Sub(a, b Uint) (Uint, error) { return Sub(a, b) }

// Mul returns a*b computed by transform convolution of the digit slots,
// followed by carry propagation. There is no schoolbook path.
//
// Returns:
//   - Uint: The product.
//   - error: A *apperrors.SizeExceededError when the operands need a
//     transform larger than the table supports.
func (c *Calculator) Mul(a, b Uint) (Uint, error) {
	coeffs, err := c.Table().Convolve(a.store(), b.store())
	if err != nil {
		return Uint{}, err
	}
	return Uint{d: carry(coeffs)}, nil
}
