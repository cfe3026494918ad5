package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/expr"
)

// EvaluationResult is the outcome of one expression of a batch. It is the
// shared domain type between orchestration and presentation.
type EvaluationResult struct {
	// Index is the position of the expression in the batch.
	Index int
	// Expression is the normalized expression text, or the raw text when it
	// could not be parsed.
	Expression string
	// Op is the parsed operator.
	Op expr.Op
	// Value is the result. It is the zero Uint if an error occurred.
	Value bigint.Uint
	// Duration is the time spent parsing and evaluating.
	Duration time.Duration
	// Err is non-nil when the expression failed. It is always an
	// apperrors.CalculationError naming the expression.
	Err error
}

// ProgressUpdate is sent once per finished expression.
type ProgressUpdate struct {
	Index int
	Err   error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// ProgressReporter displays batch progress. DisplayProgress runs in its own
// goroutine, consumes updates until progressChan is closed and then calls
// wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders evaluation results.
type ResultPresenter interface {
	// PresentResult displays one successful result.
	PresentResult(result EvaluationResult, opts PresentationOptions, out io.Writer)
	// PresentBatchSummary displays the per-expression summary table of a
	// batch with more than one expression.
	PresentBatchSummary(results []EvaluationResult, out io.Writer)
}

// ErrorHandler prints an evaluation error and returns its exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Recorder receives evaluation lifecycle events. *metrics.Metrics
// implements it.
type Recorder interface {
	EvaluationStarted()
	EvaluationFinished(op string, err error, elapsed time.Duration)
}
