// This file contains the precondition errors raised by the arithmetic core.

package apperrors

import (
	"errors"
	"fmt"
)

// MalformedDigitGroupError is returned by strict parsing when a fixed-width
// chunk of the digit run is not valid decimal.
type MalformedDigitGroupError struct {
	// Offset is the byte offset of the chunk within the digit run.
	Offset int
	// Group is the offending chunk.
	Group string
}

// Error returns a formatted message describing the malformed group.
func (e *MalformedDigitGroupError) Error() string {
	return fmt.Sprintf("malformed digit group %q at offset %d", e.Group, e.Offset)
}

// NegativeResultError is returned when an unsigned subtraction would produce a
// negative value. Minuend and Subtrahend hold the decimal operands.
type NegativeResultError struct {
	Minuend    string
	Subtrahend string
}

// Error returns a formatted message describing the violated precondition.
func (e *NegativeResultError) Error() string {
	return fmt.Sprintf("unsigned subtraction underflow: minuend %s is smaller than subtrahend %s", e.Minuend, e.Subtrahend)
}

// SizeExceededError is returned when a transform or convolution would need
// more slots than the transform table supports.
type SizeExceededError struct {
	// Requested is the transform length the operation needed.
	Requested int
	// Max is the largest transform length the table supports.
	Max int
}

// Error returns a formatted message describing the size violation.
func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("transform size %d exceeds table capacity %d", e.Requested, e.Max)
}

// LengthMismatchError is returned when two transformed sequences that must be
// the same length are not.
type LengthMismatchError struct {
	Left  int
	Right int
}

// Error returns a formatted message describing the mismatch.
func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("pointwise multiply length mismatch: %d != %d", e.Left, e.Right)
}

// NotInvertibleError is returned when a modular inverse is requested for a
// value that shares a factor with the modulus.
type NotInvertibleError struct {
	Value   uint64
	Modulus uint64
}

// Error returns a formatted message describing the failed inversion.
func (e *NotInvertibleError) Error() string {
	return fmt.Sprintf("%d has no inverse modulo %d", e.Value, e.Modulus)
}

// IsArithmeticError reports whether err carries one of the arithmetic
// precondition errors defined in this file.
func IsArithmeticError(err error) bool {
	var (
		neg *NegativeResultError
		sz  *SizeExceededError
		lm  *LengthMismatchError
		ni  *NotInvertibleError
	)
	return errors.As(err, &neg) || errors.As(err, &sz) || errors.As(err, &lm) || errors.As(err, &ni)
}

// IsInputError reports whether err was caused by malformed user input.
func IsInputError(err error) bool {
	var (
		mg *MalformedDigitGroupError
		ve ValidationError
		ce ConfigError
	)
	return errors.As(err, &mg) || errors.As(err, &ve) || errors.As(err, &ce)
}
