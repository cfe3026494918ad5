package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit statuses. Arithmetic failures get their own code so scripts
// can tell "5 - 10" apart from a mistyped operand.
const (
	ExitSuccess         = 0
	ExitErrorGeneric    = 1
	ExitErrorTimeout    = 2
	ExitErrorArithmetic = 3   // negative difference, oversized transform
	ExitErrorConfig     = 4   // bad flags, malformed operands, unparsable expressions
	ExitErrorCanceled   = 130 // SIGINT, as shells report it
)

// ConfigError reports a flag, environment or file problem found before any
// expression is evaluated.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError ties a failure to the expression that produced it. The
// batch orchestrator and the REPL wrap every per-expression error in one.
type CalculationError struct {
	Expression string
	Cause      error
}

// Error prefixes the cause with the expression, when known.
func (e CalculationError) Error() string {
	if e.Expression == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Expression, e.Cause)
}

func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError is reported by the REPL when one evaluation outlives its
// limit. Batch runs report context.DeadlineExceeded instead.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError rejects an argument before any arithmetic runs: an
// expression that does not parse, a transform size that is not a power of
// two, a table order out of range.
type ValidationError struct {
	// Field names the rejected argument, e.g. "expression" or "size".
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted context such as "left operand",
// keeping it visible to errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a canceled or expired
// context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
