package digits

import (
	"strconv"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const (
	// Radix is the value each slot is a coefficient of.
	Radix = 100000
	// Width is the number of decimal digits held by one slot.
	Width = 5
)

// Store is a base-Radix digit vector, least-significant slot first.
//
// A canonical Store has every slot in [0, Radix) and no most-significant zero
// slot, except for zero itself which is exactly one zero slot.
type Store []uint64

// Zero returns the canonical zero store.
func Zero() Store { return Store{0} }

// FromUint64 converts v into a canonical store.
func FromUint64(v uint64) Store {
	if v == 0 {
		return Zero()
	}
	s := make(Store, 0, 4)
	for v > 0 {
		s = append(s, v%Radix)
		v /= Radix
	}
	return s
}

// Parse converts an ASCII decimal digit run into a canonical store.
//
// The run is split into Width-character groups from the least-significant
// end. A group containing anything other than ASCII digits is rejected with
// a *apperrors.MalformedDigitGroupError naming the group and its byte offset.
// Leading zeros are accepted and stripped. Sign characters are not handled
// here.
//
// Parameters:
//   - text: The digit run to parse.
//
// Returns:
//   - Store: The canonical store.
//   - error: A ValidationError for empty input or a malformed group error.
func Parse(text string) (Store, error) {
	if text == "" {
		return nil, apperrors.ValidationError{Field: "digits", Message: "empty digit run"}
	}
	s := make(Store, 0, (len(text)+Width-1)/Width)
	for end := len(text); end > 0; end -= Width {
		start := max(end-Width, 0)
		v, ok := parseGroup(text[start:end])
		if !ok {
			return nil, &apperrors.MalformedDigitGroupError{Offset: start, Group: text[start:end]}
		}
		s = append(s, v)
	}
	return Normalize(s), nil
}

// ParseLenient is the permissive counterpart of Parse. Any group that is not
// valid decimal contributes zero and empty text parses as zero, so it never
// fails. Prefer Parse unless garbage-tolerant input is explicitly wanted.
func ParseLenient(text string) Store {
	if text == "" {
		return Zero()
	}
	s := make(Store, 0, (len(text)+Width-1)/Width)
	for end := len(text); end > 0; end -= Width {
		start := max(end-Width, 0)
		v, _ := parseGroup(text[start:end])
		s = append(s, v)
	}
	return Normalize(s)
}

func parseGroup(group string) (uint64, bool) {
	var v uint64
	for i := 0; i < len(group); i++ {
		c := group[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
	}
	return v, true
}

// Normalize strips most-significant zero slots down to a minimum length of
// one and returns the shortened slice. An empty store becomes Zero().
func Normalize(s Store) Store {
	n := len(s)
	for n > 1 && s[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Zero()
	}
	return s[:n]
}

// String renders the store in decimal. The most-significant slot is printed
// without padding and every lower slot as exactly Width digits.
func (s Store) String() string {
	if len(s) == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(len(s) * Width)
	top := len(s) - 1
	sb.WriteString(strconv.FormatUint(s[top], 10))
	var buf [Width]byte
	for i := top - 1; i >= 0; i-- {
		v := s[i]
		for j := Width - 1; j >= 0; j-- {
			buf[j] = byte('0' + v%10)
			v /= 10
		}
		sb.Write(buf[:])
	}
	return sb.String()
}

// IsZero reports whether the store represents zero.
func (s Store) IsZero() bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of slots.
func (s Store) Len() int { return len(s) }

// Clone returns an independent copy of s.
func (s Store) Clone() Store {
	if s == nil {
		return nil
	}
	c := make(Store, len(s))
	copy(c, s)
	return c
}

// Cmp compares two canonical stores and returns -1, 0 or +1.
func Cmp(a, b Store) int {
	a, b = Normalize(a), Normalize(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Validate checks the slot range and normalization invariant.
func (s Store) Validate() error {
	if len(s) == 0 {
		return apperrors.ValidationError{Field: "digits", Message: "store has no slots"}
	}
	for i, v := range s {
		if v >= Radix {
			return apperrors.ValidationError{
				Field:   "digits",
				Message: "slot " + strconv.Itoa(i) + " out of range: " + strconv.FormatUint(v, 10),
			}
		}
	}
	if len(s) > 1 && s[len(s)-1] == 0 {
		return apperrors.ValidationError{Field: "digits", Message: "most-significant slot is zero"}
	}
	return nil
}

// DecimalLen returns the number of decimal digits in the canonical rendering.
func (s Store) DecimalLen() int {
	s = Normalize(s)
	top := s[len(s)-1]
	n := 1
	for top >= 10 {
		top /= 10
		n++
	}
	return (len(s)-1)*Width + n
}
