package digits

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Store
	}{
		{"zero", "0", Store{0}},
		{"all zeros", "0000000000", Store{0}},
		{"single slot", "99999", Store{99999}},
		{"slot boundary", "100000", Store{0, 1}},
		{"leading zeros", "00012345", Store{12345}},
		{"twenty digits", "12345678901234567890", Store{67890, 12345, 67890, 12345}},
		{"short top group", "1000000000001", Store{1, 0, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("")
		var ve apperrors.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	tests := []struct {
		in     string
		offset int
		group  string
	}{
		{"12a45", 0, "12a45"},
		{"1234567x90", 5, "67x90"},
		{"-5", 0, "-5"},
		{"x00000", 0, "x"},
		{"12 345", 1, "2 345"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.in)
			var mg *apperrors.MalformedDigitGroupError
			if !errors.As(err, &mg) {
				t.Fatalf("Parse(%q): expected MalformedDigitGroupError, got %v", tt.in, err)
			}
			if mg.Offset != tt.offset || mg.Group != tt.group {
				t.Errorf("Parse(%q): got group %q at %d, want %q at %d", tt.in, mg.Group, mg.Offset, tt.group, tt.offset)
			}
		})
	}
}

func TestParseLenient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Store
	}{
		{"", Store{0}},
		{"12a45", Store{0}},
		{"12a4500001", Store{1}},
		{"00001abcde", Store{0, 1}},
		{"99999", Store{99999}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, ParseLenient(tt.in)); diff != "" {
				t.Errorf("ParseLenient(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Store
		want string
	}{
		{Store{0}, "0"},
		{nil, "0"},
		{Store{7}, "7"},
		{Store{0, 1}, "100000"},
		{Store{1, 0, 100}, "1000000000001"},
		{Store{67890, 12345, 67890, 12345}, "12345678901234567890"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", []uint64(tt.in), got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff(Store{5}, Normalize(Store{5, 0, 0})); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Store{0}, Normalize(Store{0, 0, 0})); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Store{0}, Normalize(nil)); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b Store
		want int
	}{
		{Store{0}, Store{0}, 0},
		{Store{1}, Store{0, 1}, -1},
		{Store{0, 1}, Store{99999}, 1},
		{Store{5, 3}, Store{6, 3}, -1},
		{Store{5, 3, 0}, Store{5, 3}, 0},
	}
	for _, tt := range tests {
		if got := Cmp(tt.a, tt.b); got != tt.want {
			t.Errorf("Cmp(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := (Store{1, 2, 3}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Zero().Validate(); err != nil {
		t.Errorf("unexpected error for zero: %v", err)
	}
	for _, bad := range []Store{nil, {Radix}, {1, 0}} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Validate(%v) should fail", []uint64(bad))
		}
	}
}

func TestFromUint64AndDecimalLen(t *testing.T) {
	t.Parallel()

	for _, v := range []uint64{0, 9, 10, 99999, 100000, 18446744073709551615} {
		s := FromUint64(v)
		want := new(big.Int).SetUint64(v).String()
		if s.String() != want {
			t.Errorf("FromUint64(%d) = %s", v, s)
		}
		if s.DecimalLen() != len(want) {
			t.Errorf("DecimalLen(%d) = %d, want %d", v, s.DecimalLen(), len(want))
		}
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	s := Store{1, 2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("Clone shares backing storage")
	}
	if Store(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

// canonical strips leading zeros, mapping the empty run to "0".
func canonical(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

// TestRoundTrip_PropertyBased verifies String(Parse(s)) == s for canonical
// decimal strings and that both agree with math/big.
func TestRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("String(Parse(s)) == s", prop.ForAll(
		func(raw string) bool {
			s := canonical(raw)
			st, err := Parse(s)
			if err != nil {
				return false
			}
			if st.Validate() != nil {
				return false
			}
			ref, _ := new(big.Int).SetString(s, 10)
			return st.String() == s && ref.String() == s
		},
		gen.NumString(),
	))

	properties.Property("Parse ignores leading zeros", prop.ForAll(
		func(raw string, pad int) bool {
			s := canonical(raw)
			a, err1 := Parse(s)
			b, err2 := Parse(strings.Repeat("0", pad) + s)
			return err1 == nil && err2 == nil && Cmp(a, b) == 0
		},
		gen.NumString(),
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}

// FuzzParseRoundTrip checks that any accepted input renders back to its
// canonical form and that rejected input is always reported as malformed.
func FuzzParseRoundTrip(f *testing.F) {
	f.Add("0")
	f.Add("12345678901234567890")
	f.Add("100000")
	f.Add("000123")
	f.Add("12a45")

	f.Fuzz(func(t *testing.T, in string) {
		if len(in) > 4096 {
			return
		}
		st, err := Parse(in)
		if err != nil {
			if in != "" && !errors.As(err, new(*apperrors.MalformedDigitGroupError)) {
				t.Fatalf("Parse(%q): unexpected error type %T", in, err)
			}
			return
		}
		if st.String() != canonical(in) {
			t.Fatalf("Parse(%q).String() = %q, want %q", in, st.String(), canonical(in))
		}
	})
}
