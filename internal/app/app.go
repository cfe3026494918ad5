package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/ntt"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In feeds the REPL and "-f -".
	In io.Reader

	logger  *logging.ZerologAdapter
	metrics *metrics.Metrics
	table   *ntt.Table
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the REPL and by "-f -".
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithTable injects a transform table instead of building one from the
// configuration.
func WithTable(t *ntt.Table) AppOption {
	return func(a *Application) { a.table = t }
}

// WithMetrics injects the metrics collectors.
func WithMetrics(m *metrics.Metrics) AppOption {
	return func(a *Application) { a.metrics = m }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveDefaults(cfg)
	return app, nil
}

// Run executes the application in the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	if code := a.setup(); code != apperrors.ExitSuccess {
		return code
	}

	if a.Config.MetricsAddr != "" {
		serveCtx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			if err := a.metrics.Serve(serveCtx, a.Config.MetricsAddr, a.logger.Zerolog()); err != nil {
				a.logger.Error("metrics server stopped", err, logging.String("addr", a.Config.MetricsAddr))
			}
		}()
	}

	if a.Config.Interactive {
		return a.runREPL(out)
	}
	return a.runCalculate(ctx, out)
}

// setup configures logging and builds the metrics and transform table.
func (a *Application) setup() int {
	level := a.Config.LogLevel
	if level == "" && a.Config.Verbose {
		level = "debug"
	}
	if err := logging.SetGlobalLevel(level); err != nil {
		fmt.Fprintf(a.ErrWriter, "%v\n", apperrors.NewConfigError("%v", err))
		return apperrors.ExitErrorConfig
	}
	a.logger = newLogger(a.ErrWriter, a.Config.NoColor)

	if a.metrics == nil {
		a.metrics = metrics.NewMetrics()
	}
	if a.table == nil {
		table, err := ntt.NewTable(
			ntt.WithMaxLog(a.Config.MaxTransformLog),
			ntt.WithLogger(a.logger.Zerolog()),
			ntt.WithObserver(a.metrics),
		)
		if err != nil {
			return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ErrorColors{})
		}
		a.table = table
	}
	a.logger.Debug("transform table ready",
		logging.Int("max_log", a.table.MaxLog()),
		logging.Uint64("levels", a.table.PopulatedLevels()),
		logging.Int("workers", a.Config.Workers))
	return apperrors.ExitSuccess
}

// newLogger logs in console format when w is a terminal and as JSON
// otherwise.
func newLogger(w io.Writer, noColor bool) *logging.ZerologAdapter {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return logging.NewConsoleLogger(w, "bigcalc", noColor)
	}
	return logging.NewLogger(w, "bigcalc")
}

// replWarmSlots is the operand size pre-warmed for interactive sessions,
// where operands are typed or pasted by hand.
const replWarmSlots = 1 << 12

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer) int {
	if a.Config.PreWarm {
		a.preWarm(min(replWarmSlots, a.table.MaxSize()/2))
	}
	repl := cli.NewREPL(bigint.NewCalculator(a.table), cli.REPLConfig{
		Timeout: a.Config.Timeout,
		Lenient: a.Config.Lenient,
		Verbose: a.Config.Verbose,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.SetRecorder(a.metrics)
	repl.SetLogger(a.logger)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
