package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/digits"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// runCalculate evaluates the configured expressions as one batch.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	exprs, err := a.collectExpressions()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ErrorColors{})
	}
	if len(exprs) == 0 {
		fmt.Fprintln(a.ErrWriter, "No expression given. Use -e \"a op b\", -f FILE, positional arguments or -i.")
		return apperrors.ExitErrorConfig
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.PreWarm {
		a.preWarm(largestOperandSlots(exprs))
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(len(exprs), out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	start := time.Now()
	results := orchestration.ExecuteBatch(ctx, bigint.NewCalculator(a.table), exprs, orchestration.BatchOptions{
		Workers:  a.Config.Workers,
		Lenient:  a.Config.Lenient,
		Recorder: a.metrics,
	}, progressReporter, progressOut)
	a.logger.Debug("batch finished",
		logging.Int("expressions", len(exprs)),
		logging.String("elapsed", time.Since(start).String()))

	presOpts := orchestration.PresentationOptions{Verbose: a.Config.Verbose, Quiet: a.Config.Quiet}
	presenter := cli.CLIResultPresenter{Logger: a.logger}
	exitCode := orchestration.AnalyzeResults(results, presOpts, presenter, presenter, out)

	outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet, Verbose: a.Config.Verbose}
	if outputCfg.OutputFile != "" {
		if err := cli.WriteResultsToFile(results, outputCfg); err != nil {
			a.logger.Error("saving results", err, logging.String("path", outputCfg.OutputFile))
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		} else if !outputCfg.Quiet {
			cli.DisplaySavedNotice(out, outputCfg.OutputFile)
		}
	}

	if a.Config.Verbose {
		cli.DisplayMemoryStats(metrics.NewMemoryCollector(a.table).Snapshot(), out)
	}
	return exitCode
}

// collectExpressions gathers the inline expressions and the input file.
// The file name "-" reads from a.In.
func (a *Application) collectExpressions() ([]string, error) {
	if a.Config.InputFile == "" {
		return orchestration.CollectExpressions(a.Config.Expressions, nil)
	}
	if a.Config.InputFile == "-" {
		return orchestration.CollectExpressions(a.Config.Expressions, a.In)
	}
	f, err := os.Open(a.Config.InputFile)
	if err != nil {
		return nil, apperrors.NewConfigError("cannot open expression file: %v", err)
	}
	defer f.Close()
	return orchestration.CollectExpressions(a.Config.Expressions, f)
}

// largestOperandSlots returns the slot count of the longest operand among
// exprs. Unparsable expressions are ignored; evaluation reports them.
func largestOperandSlots(exprs []string) int {
	longest := 0
	for _, text := range exprs {
		e, err := expr.Parse(text)
		if err != nil {
			continue
		}
		longest = max(longest, len(e.Left), len(e.Right))
	}
	return (longest + digits.Width - 1) / digits.Width
}

// preWarm populates the table for operands of up to slots slots. Failures
// only cost speed, so they are logged and ignored.
func (a *Application) preWarm(slots int) {
	start := time.Now()
	if err := a.table.EnsureWarmed(slots); err != nil {
		a.logger.Error("pre-warming transform table", err, logging.Int("slots", slots))
		return
	}
	a.logger.Info("transform table pre-warmed",
		logging.Int("slots", slots),
		logging.String("elapsed", time.Since(start).String()))
}
