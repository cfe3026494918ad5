//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

const (
	// TruncationLimit is the digit count from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges is the number of digits shown at each end of a
	// truncated result.
	DisplayEdges = 25
	// ProgressRefreshRate is how often the batch spinner redraws.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar length in runes.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins drawing.
	Start()
	// Stop clears the spinner line.
	Stop()
	// UpdateSuffix replaces the text after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix takes the spinner lock because the animation goroutine reads
// the suffix concurrently.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

func progressSuffix(completed, total int, fraction float64, eta time.Duration) string {
	return fmt.Sprintf(" %d/%d %s", completed, total, format.FormatProgressBarWithETA(fraction, eta, ProgressBarWidth))
}

// DisplayProgress shows a spinner with a progress bar while a batch runs.
// It consumes progressChan until it is closed and then calls wg.Done. The
// bar is refreshed on every update and on a ticker, so the ETA keeps
// moving while a long multiplication runs.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(total)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(0, total, 0, 0))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	completed := 0
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			p := agg.Update(update)
			completed = p.Completed
			s.UpdateSuffix(progressSuffix(completed, total, p.Fraction, p.ETA))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(completed, total, agg.Fraction(), agg.ETA()))
		}
	}
}

// DisplayResult prints one successful result. Results longer than
// TruncationLimit digits are shortened unless verbose is set; verbose also
// adds the digit count and evaluation time.
func DisplayResult(result orchestration.EvaluationResult, verbose bool, out io.Writer) {
	value := result.Value.String()
	shown, truncated := value, false
	if !verbose {
		shown, truncated = format.TruncateDigits(value, TruncationLimit, DisplayEdges)
	}

	fmt.Fprintf(out, "%s%s%s = %s%s%s\n",
		ui.ColorCyan(), displayExpression(result.Expression), ui.ColorReset(),
		ui.ColorGreen(), shown, ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "  %s(%s digits, truncated; use -v or -o for the full value)%s\n",
			ui.ColorGrey(), format.FormatNumberString(fmt.Sprint(len(value))), ui.ColorReset())
	}
	if verbose {
		fmt.Fprintf(out, "  %sDigits:%s %s   %sTime:%s %s%s%s\n",
			ui.ColorBold(), ui.ColorReset(), format.FormatNumberString(fmt.Sprint(len(value))),
			ui.ColorBold(), ui.ColorReset(),
			ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	}
}

// displayExpression shortens long operands in an echoed expression.
func displayExpression(e string) string {
	s, _ := format.TruncateDigits(e, 2*TruncationLimit, DisplayEdges)
	return s
}
