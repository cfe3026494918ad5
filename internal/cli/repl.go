// Package cli provides the terminal front end of bigcalc: batch progress
// and result display, result files, and the interactive REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/ui"
)

// lastResultName refers to the previous result in REPL operands.
const lastResultName = "ans"

// REPLConfig carries the per-session settings that the lenient and verbose
// commands toggle.
type REPLConfig struct {
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// Lenient selects the lenient operand parser.
	Lenient bool
	// Verbose shows full values with digit counts.
	Verbose bool
}

// REPL is an interactive calculator session.
type REPL struct {
	config   REPLConfig
	calc     *bigint.Calculator
	memory   *metrics.MemoryCollector
	recorder orchestration.Recorder
	logger   logging.Logger
	last     bigint.Uint
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a REPL evaluating with calc. A nil calc uses the default
// transform table.
func NewREPL(calc *bigint.Calculator, config REPLConfig) *REPL {
	if calc == nil {
		calc = bigint.NewCalculator(nil)
	}
	return &REPL{
		config: config,
		calc:   calc,
		memory: metrics.NewMemoryCollector(calc.Table()),
		logger: logging.Nop(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput replaces stdin as the command source.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces stdout.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// SetRecorder reports every evaluation to rec.
func (r *REPL) SetRecorder(rec orchestration.Recorder) { r.recorder = rec }

// SetLogger sets the logger receiving evaluation records.
func (r *REPL) SetLogger(l logging.Logger) { r.logger = l }

// Start runs the session until the user exits or input reaches EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"calc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		atEOF := err != nil

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if atEOF {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// replCommands is the help listing, in display order.
var replCommands = []struct{ usage, summary string }{
	{"add|sub|mul <a> <b>", "apply the operation to two digit runs"},
	{"<a> + <b>", "infix form; the operator may also be - or *"},
	{"lenient", "switch between strict and lenient digit parsing"},
	{"verbose", "print results in full instead of truncated"},
	{"status", "show settings, transform table and memory"},
	{"help", "print this listing"},
	{"exit", "leave (quit and q also work, as does end of input)"},
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%sbigcalc%s interactive session, transforms up to 2^%d slots\n\n",
		ui.ColorBold(), ui.ColorReset(), r.calc.Table().MaxLog())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range replCommands {
		fmt.Fprintf(r.out, "  %s%-22s%s %s\n", ui.ColorYellow(), c.usage, ui.ColorReset(), c.summary)
	}
	fmt.Fprintf(r.out, "%s%s%s names the previous result.\n", ui.ColorYellow(), lastResultName, ui.ColorReset())
}

// processCommand executes one input line. Returns false if the REPL should
// exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "add", "sub", "mul":
		if len(args) != 2 {
			fmt.Fprintf(r.out, "%sUsage: %s <a> <b>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			return true
		}
		op := map[string]string{"add": "+", "sub": "-", "mul": "*"}[cmd]
		r.evaluate(args[0] + " " + op + " " + args[1])
	case "lenient":
		r.config.Lenient = !r.config.Lenient
		fmt.Fprintf(r.out, "Digit parsing: %s%s%s\n", ui.ColorGreen(), parserMode(r.config.Lenient), ui.ColorReset())
	case "verbose", "v":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Full values: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Verbose), ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if input[0] >= '0' && input[0] <= '9' || input[0] == '+' || strings.HasPrefix(cmd, lastResultName) {
			r.evaluate(input)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// substituteLast replaces the operands named ans by the previous result.
func (r *REPL) substituteLast(e expr.Expression) expr.Expression {
	if strings.EqualFold(e.Left, lastResultName) {
		e.Left = r.last.String()
	}
	if strings.EqualFold(e.Right, lastResultName) {
		e.Right = r.last.String()
	}
	return e
}

type replOutcome struct {
	value bigint.Uint
	err   error
}

// evaluate parses and evaluates one expression under the configured
// timeout. On timeout the evaluation goroutine is abandoned; it finishes on
// its own since arithmetic cannot be interrupted.
func (r *REPL) evaluate(text string) {
	e, err := expr.Parse(text)
	if err != nil {
		apperrors.HandleCalculationError(err, 0, r.out, ui.ErrorColors{})
		return
	}
	e = r.substituteLast(e)

	ctx := context.Background()
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	opts := expr.Options{Lenient: r.config.Lenient}
	done := make(chan replOutcome, 1)
	start := time.Now()
	if r.recorder != nil {
		r.recorder.EvaluationStarted()
	}
	go func() {
		v, err := e.Evaluate(r.calc, opts)
		done <- replOutcome{v, err}
	}()

	var outcome replOutcome
	select {
	case outcome = <-done:
	case <-ctx.Done():
		outcome.err = apperrors.TimeoutError{Operation: e.String(), Limit: r.config.Timeout}
	}
	duration := time.Since(start)
	if r.recorder != nil {
		r.recorder.EvaluationFinished(e.Op.Name(), outcome.err, duration)
	}

	if outcome.err != nil {
		r.logger.Debug("evaluation failed",
			logging.String("expression", e.String()),
			logging.String("elapsed", duration.String()),
			logging.Err(outcome.err))
		apperrors.HandleCalculationError(apperrors.CalculationError{Expression: e.String(), Cause: outcome.err}, duration, r.out, ui.ErrorColors{})
		return
	}
	r.last = outcome.value
	r.logger.Debug("evaluated",
		logging.String("op", e.Op.Name()),
		logging.Int("digits", outcome.value.DecimalLen()),
		logging.String("elapsed", duration.String()))
	DisplayResult(orchestration.EvaluationResult{
		Expression: e.String(),
		Op:         e.Op,
		Value:      outcome.value,
		Duration:   duration,
	}, r.config.Verbose, r.out)
	if !r.config.Verbose && outcome.value.DecimalLen() <= TruncationLimit {
		fmt.Fprintf(r.out, "  %s%s digits in %s%s\n", ui.ColorGrey(),
			format.FormatNumberString(fmt.Sprint(outcome.value.DecimalLen())),
			format.FormatExecutionDuration(duration), ui.ColorReset())
	}
}

// cmdStatus displays the session configuration, the transform table state
// and the host environment.
func (r *REPL) cmdStatus() {
	table := r.calc.Table()
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Digit parsing:  %s%s%s\n", ui.ColorCyan(), parserMode(r.config.Lenient), ui.ColorReset())
	fmt.Fprintf(r.out, "  Full values:    %s%s%s\n", ui.ColorCyan(), onOff(r.config.Verbose), ui.ColorReset())
	fmt.Fprintf(r.out, "  Transform max:  %s2^%d%s slots\n", ui.ColorCyan(), table.MaxLog(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Memory:         %s%s%s\n", ui.ColorCyan(), r.memory.Snapshot(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Environment:    %s%s%s\n", ui.ColorCyan(), sysmon.Sample(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Last result:    %s%d digits%s\n", ui.ColorCyan(), r.last.DecimalLen(), ui.ColorReset())
	fmt.Fprintln(r.out)
}
