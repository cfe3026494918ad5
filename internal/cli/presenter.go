package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// summaryExprWidth bounds the expression column of the batch summary.
const summaryExprWidth = 40

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for a running batch.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler for terminal output.
type CLIResultPresenter struct {
	// Logger, when set, records failures at debug level.
	Logger logging.Logger
}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentResult displays one result in the mode selected by opts.
func (CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResultWithConfig(out, result, OutputConfig{Quiet: opts.Quiet, Verbose: opts.Verbose})
}

// PresentBatchSummary displays a table of expressions, durations and
// status. Padding is computed by hand so ANSI codes do not skew columns.
func (CLIResultPresenter) PresentBatchSummary(results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Batch Summary ---\n")

	exprWidth, durWidth := len("Expression"), len("Duration")
	rows := make([][2]string, len(results))
	for i, res := range results {
		e, _ := format.TruncateDigits(res.Expression, summaryExprWidth, (summaryExprWidth-3)/2)
		d := format.FormatExecutionDuration(res.Duration)
		rows[i] = [2]string{e, d}
		exprWidth = max(exprWidth, len(e))
		durWidth = max(durWidth, len(d))
	}

	fmt.Fprintf(out, "%s#%s    %sExpression%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", exprWidth-len("Expression")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", durWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	ok := 0
	for i, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s✗ %s%s", ui.ColorRed(), failureKind(res.Err), ui.ColorReset())
		} else {
			ok++
			status = fmt.Sprintf("%s✓ %d digits%s", ui.ColorGreen(), res.Value.DecimalLen(), ui.ColorReset())
		}
		fmt.Fprintf(out, "%-4d %s%s%s%s   %s%s%s%s   %s\n",
			res.Index,
			ui.ColorCyan(), rows[i][0], ui.ColorReset(), padRight("", exprWidth-len(rows[i][0])),
			ui.ColorYellow(), rows[i][1], ui.ColorReset(), padRight("", durWidth-len(rows[i][1])),
			status)
	}
	fmt.Fprintf(out, "\n%d of %d expressions succeeded.\n", ok, len(results))
}

func failureKind(err error) string {
	switch {
	case apperrors.IsContextError(err):
		return "canceled"
	case apperrors.IsInputError(err):
		return "invalid input"
	case apperrors.IsArithmeticError(err):
		return "arithmetic error"
	default:
		return "error"
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// HandleError prints err and returns the matching exit code. The failure is
// also logged at debug level when the presenter has a Logger.
func (p CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	code := apperrors.HandleCalculationError(err, duration, out, ui.ErrorColors{})
	if p.Logger != nil {
		p.Logger.Debug("expression failed",
			logging.Int("exit_code", code),
			logging.String("elapsed", duration.String()),
			logging.Err(err))
	}
	return code
}

// DisplayMemoryStats shows the memory and transform table snapshot after a
// batch.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:      %.1f MiB (%d objects)\n", float64(snap.HeapAlloc)/(1<<20), snap.HeapObjects)
	fmt.Fprintf(out, "  GC cycles:        %d\n", snap.NumGC)
	if snap.TableTopLevel >= 0 {
		fmt.Fprintf(out, "  Transform levels: 0..%d of %d (%.1f MiB of roots)\n",
			snap.TableTopLevel, snap.TableMaxLog, float64(snap.TableBytes)/(1<<20))
	} else {
		fmt.Fprintf(out, "  Transform levels: none of %d\n", snap.TableMaxLog)
	}
}
