package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestArithmeticErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "MalformedDigitGroupError",
			err:      &MalformedDigitGroupError{Offset: 5, Group: "12a45"},
			expected: `malformed digit group "12a45" at offset 5`,
		},
		{
			name:     "NegativeResultError",
			err:      &NegativeResultError{Minuend: "5", Subtrahend: "10"},
			expected: "unsigned subtraction underflow: minuend 5 is smaller than subtrahend 10",
		},
		{
			name:     "SizeExceededError",
			err:      &SizeExceededError{Requested: 1 << 23, Max: 1 << 22},
			expected: "transform size 8388608 exceeds table capacity 4194304",
		},
		{
			name:     "LengthMismatchError",
			err:      &LengthMismatchError{Left: 8, Right: 16},
			expected: "pointwise multiply length mismatch: 8 != 16",
		},
		{
			name:     "NotInvertibleError",
			err:      &NotInvertibleError{Value: 6, Modulus: 9},
			expected: "6 has no inverse modulo 9",
		},
		{
			name:     "CalculationError with expression",
			err:      CalculationError{Expression: "5 - 10", Cause: errors.New("underflow")},
			expected: "5 - 10: underflow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		err        error
		arithmetic bool
		input      bool
	}{
		{"negative result", &NegativeResultError{}, true, false},
		{"wrapped size exceeded", WrapError(&SizeExceededError{}, "convolve"), true, false},
		{"length mismatch", &LengthMismatchError{}, true, false},
		{"not invertible", &NotInvertibleError{}, true, false},
		{"malformed group", &MalformedDigitGroupError{}, false, true},
		{"validation", ValidationError{Field: "text"}, false, true},
		{"config", NewConfigError("bad flag"), false, true},
		{"plain", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsArithmeticError(tt.err); got != tt.arithmetic {
				t.Errorf("IsArithmeticError = %v, want %v", got, tt.arithmetic)
			}
			if got := IsInputError(tt.err); got != tt.input {
				t.Errorf("IsInputError = %v, want %v", got, tt.input)
			}
		})
	}
}

type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		duration time.Duration
		wantCode int
		contains string
	}{
		{"nil error", nil, 0, ExitSuccess, ""},
		{"timeout", TimeoutError{Operation: "batch", Limit: time.Second}, 0, ExitErrorTimeout, "Timeout"},
		{"deadline", context.DeadlineExceeded, time.Millisecond, ExitErrorTimeout, "Canceled after"},
		{"canceled", context.Canceled, 0, ExitErrorCanceled, "Canceled"},
		{"input", &MalformedDigitGroupError{Group: "x"}, 0, ExitErrorConfig, "Invalid input"},
		{"arithmetic", CalculationError{Expression: "1 - 2", Cause: &NegativeResultError{Minuend: "1", Subtrahend: "2"}}, 0, ExitErrorArithmetic, "Arithmetic error"},
		{"generic", errors.New("boom"), 0, ExitErrorGeneric, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, tt.duration, &buf, plainColors{})
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.contains == "" && buf.Len() != 0 {
				t.Errorf("expected no output, got %q", buf.String())
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.contains)
			}
		})
	}
}
