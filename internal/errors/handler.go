package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing errors. It keeps
// this package free of a dependency on the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError prints err to out and maps it to an exit code.
// A nil error yields ExitSuccess and prints nothing.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sTimeout: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorTimeout
	case IsContextError(err):
		if duration > 0 {
			fmt.Fprintf(out, "%sCanceled after %s: %v%s\n", colors.Yellow(), duration, err, colors.Reset())
		} else {
			fmt.Fprintf(out, "%sCanceled: %v%s\n", colors.Yellow(), err, colors.Reset())
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return ExitErrorTimeout
		}
		return ExitErrorCanceled
	case IsInputError(err):
		fmt.Fprintf(out, "%sInvalid input: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	case IsArithmeticError(err):
		fmt.Fprintf(out, "%sArithmetic error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorArithmetic
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	}
}
