package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders an evaluation time at a precision that
// suits its magnitude. Additions of short operands routinely finish in
// under a microsecond; multi-megadigit products take seconds.
//
//	  850ns -> "< 1µs"
//	 42.7µs -> "42µs"
//	 3.21ms -> "3ms"
//	1.2345s -> "1.23s"
//	  95.4s -> "1m35s"
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return d.Truncate(10 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
