package bigint

import "github.com/agbru/bigcalc/internal/digits"

// Sign tags an Int as non-negative or negative.
type Sign int8

const (
	NonNegative Sign = iota
	Negative
)

// String returns "+" or "-".
func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// Int is a signed arbitrary-precision integer: a magnitude and a sign.
// Zero is always NonNegative. Only representation is provided; arithmetic
// is defined on Uint.
type Int struct {
	sign Sign
	mag  Uint
}

// NewInt combines a sign and magnitude. A zero magnitude is always stored
// as NonNegative.
func NewInt(sign Sign, mag Uint) Int {
	if mag.IsZero() {
		sign = NonNegative
	}
	return Int{sign: sign, mag: mag}
}

// ParseInt parses an optional '+' or '-' followed by decimal digits.
// Malformed digit groups are rejected; "-0" parses as 0.
func ParseInt(text string) (Int, error) {
	body, negative := splitSign(text)
	d, err := digits.Parse(body)
	if err != nil {
		return Int{}, err
	}
	sign := NonNegative
	if negative {
		sign = Negative
	}
	return NewInt(sign, Uint{d: d}), nil
}

// ParseIntLenient is ParseInt with malformed groups counted as zero.
func ParseIntLenient(text string) Int {
	body, negative := splitSign(text)
	sign := NonNegative
	if negative {
		sign = Negative
	}
	return NewInt(sign, Uint{d: digits.ParseLenient(body)})
}

// Sign returns the sign of x.
func (x Int) Sign() Sign { return x.sign }

// Abs returns the magnitude of x.
func (x Int) Abs() Uint { return x.mag }

// Neg returns -x. Negating zero yields zero.
func (x Int) Neg() Int {
	if x.sign == Negative {
		return NewInt(NonNegative, x.mag)
	}
	return NewInt(Negative, x.mag)
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return x.mag.IsZero() }

// String renders x in decimal with a leading '-' when negative.
func (x Int) String() string {
	if x.sign == Negative && !x.mag.IsZero() {
		return "-" + x.mag.String()
	}
	return x.mag.String()
}
