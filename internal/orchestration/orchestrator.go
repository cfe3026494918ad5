package orchestration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
)

const tracerName = "github.com/agbru/bigcalc/internal/orchestration"

// BatchOptions configures ExecuteBatch.
type BatchOptions struct {
	// Workers bounds the number of expressions evaluated at once. Zero or
	// less means no limit.
	Workers int
	// Lenient selects the lenient operand parser.
	Lenient bool
	// Recorder, if set, receives one Started/Finished pair per expression.
	Recorder Recorder
}

// ExecuteBatch evaluates every expression of exprs concurrently with calc.
//
// Failures never stop the batch: each result carries its own error. When
// ctx is canceled, expressions that have not started yet fail with the
// context error. Multiplications still serialize on the transform table
// lock, so extra workers mostly overlap parsing, addition and formatting.
//
// Parameters:
//   - ctx: The context for cancellation and tracing.
//   - calc: The arithmetic used to evaluate expressions.
//   - exprs: The expression texts.
//   - opts: Worker limit, parser mode and metrics recorder.
//   - progressReporter: Displays progress (NullProgressReporter for quiet mode).
//   - out: The writer for progress output.
//
// Returns:
//   - []EvaluationResult: One result per expression, in input order.
func ExecuteBatch(ctx context.Context, calc expr.Calculator, exprs []string, opts BatchOptions, progressReporter ProgressReporter, out io.Writer) []EvaluationResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ExecuteBatch",
		trace.WithAttributes(
			attribute.Int("bigcalc.batch.size", len(exprs)),
			attribute.Int("bigcalc.batch.workers", opts.Workers),
		))
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	results := make([]EvaluationResult, len(exprs))
	// One slot per expression: workers never block on a slow display.
	progressChan := make(chan ProgressUpdate, len(exprs))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(exprs), out)

	for i, text := range exprs {
		g.Go(func() error {
			results[i] = evaluate(gctx, calc, i, text, opts)
			progressChan <- ProgressUpdate{Index: i, Err: results[i].Err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("bigcalc.batch.failed", failed))
	if failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d expressions failed", failed, len(exprs)))
	}
	return results
}

func evaluate(ctx context.Context, calc expr.Calculator, index int, text string, opts BatchOptions) EvaluationResult {
	_, span := otel.Tracer(tracerName).Start(ctx, "Evaluate",
		trace.WithAttributes(attribute.Int("bigcalc.expression.index", index)))
	defer span.End()

	res := EvaluationResult{Index: index, Expression: strings.TrimSpace(text)}
	start := time.Now()
	err := ctx.Err()
	if err == nil {
		if opts.Recorder != nil {
			opts.Recorder.EvaluationStarted()
		}
		var e expr.Expression
		opName := "invalid"
		e, err = expr.Parse(text)
		if err == nil {
			res.Op, res.Expression, opName = e.Op, e.String(), e.Op.Name()
			span.SetAttributes(attribute.String("bigcalc.expression.op", opName))
			res.Value, err = e.Evaluate(calc, expr.Options{Lenient: opts.Lenient})
		}
		if opts.Recorder != nil {
			opts.Recorder.EvaluationFinished(opName, err, time.Since(start))
		}
	}
	res.Duration = time.Since(start)

	if err != nil {
		res.Err = apperrors.CalculationError{Expression: res.Expression, Cause: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res
	}
	span.SetAttributes(attribute.Int("bigcalc.result.digits", res.Value.DecimalLen()))
	return res
}

// AnalyzeResults presents the results of a batch and computes the exit code.
//
// Successful results are presented in input order and failed ones go through
// errorHandler. For batches of more than one expression a summary table
// follows. The exit code is the one of the first failed expression, or
// ExitSuccess when all succeeded.
//
// Parameters:
//   - results: The batch results, in input order.
//   - opts: Presentation options.
//   - presenter: The result presenter.
//   - errorHandler: The handler mapping errors to exit codes.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code.
func AnalyzeResults(results []EvaluationResult, opts PresentationOptions, presenter ResultPresenter, errorHandler ErrorHandler, out io.Writer) int {
	exitCode := apperrors.ExitSuccess
	for _, res := range results {
		if res.Err != nil {
			code := errorHandler.HandleError(res.Err, res.Duration, out)
			if exitCode == apperrors.ExitSuccess {
				exitCode = code
			}
			continue
		}
		presenter.PresentResult(res, opts, out)
	}

	if len(results) > 1 && !opts.Quiet {
		presenter.PresentBatchSummary(results, out)
	}
	return exitCode
}
