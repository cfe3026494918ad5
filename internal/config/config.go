package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/ntt"
	"github.com/agbru/bigcalc/internal/ui"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "BIGCALC_"

// DefaultTimeout bounds one batch or REPL evaluation.
const DefaultTimeout = 5 * time.Minute

// AppConfig aggregates all command-line configuration for bigcalc.
type AppConfig struct {
	// Expressions are the "a op b" expressions to evaluate, from -e flags and
	// positional arguments.
	Expressions []string
	// InputFile holds expressions, one per line.
	InputFile string
	// Interactive starts the REPL.
	Interactive bool
	// OutputFile receives the results when set.
	OutputFile string
	// Quiet prints only the results.
	Quiet bool
	// Verbose prints full values instead of truncating long results.
	Verbose bool
	// LogLevel is a zerolog level name.
	LogLevel string
	// Timeout bounds the whole batch.
	Timeout time.Duration
	// MaxTransformLog is the largest transform order; 0 selects a default
	// from the platform.
	MaxTransformLog int
	// Workers is the number of concurrent evaluations; 0 selects a default
	// from the CPU count.
	Workers int
	// Lenient parses malformed digit groups as zero instead of failing.
	Lenient bool
	// PreWarm populates the transform table before evaluating.
	PreWarm bool
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// NoColor disables ANSI colors.
	NoColor bool
	// Theme names the color theme; empty selects the default.
	Theme string
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, "; ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// ParseConfig parses command-line arguments, applies BIGCALC_ environment
// overrides for flags that were not set explicitly, and validates the result.
//
// Parameters:
//   - programName: Name used in usage output.
//   - args: Arguments without the program name.
//   - errorOutput: Destination for usage and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, otherwise a ConfigError.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	var cfg AppConfig
	var exprs stringList
	fs.Var(&exprs, "e", "Expression to evaluate, e.g. \"123 * 456\" (repeatable).")
	fs.Var(&exprs, "expr", "Alias for -e.")
	fs.StringVar(&cfg.InputFile, "f", "", "File with one expression per line.")
	fs.StringVar(&cfg.InputFile, "file", "", "Alias for -f.")
	fs.BoolVar(&cfg.Interactive, "i", false, "Start the interactive REPL.")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Alias for -i.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write results to this file.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Alias for -o.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print results only.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Alias for -q.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Print full values and debug logs.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Alias for -v.")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum time for the whole run.")
	fs.IntVar(&cfg.MaxTransformLog, "max-transform-log", 0, "Largest transform order, 1-26 (0 = auto).")
	fs.IntVar(&cfg.Workers, "workers", 0, "Concurrent evaluations (0 = auto).")
	fs.BoolVar(&cfg.Lenient, "lenient", false, "Treat malformed digit groups as zero.")
	fs.BoolVar(&cfg.PreWarm, "prewarm", false, "Populate the transform table before evaluating.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.Theme, "theme", "", "Color theme: "+strings.Join(ui.ThemeNames(), ", ")+".")

	fs.Usage = func() {
		fmt.Fprintf(errorOutput, "Usage: %s [flags] [a op b]\n\n", programName)
		fmt.Fprintf(errorOutput, "Evaluates big integer expressions with +, - and *.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	cfg.Expressions = append(cfg.Expressions, exprs...)
	if fs.NArg() > 0 {
		cfg.Expressions = append(cfg.Expressions, strings.Join(fs.Args(), " "))
	}

	for _, w := range applyEnvOverrides(fs) {
		fmt.Fprintln(errorOutput, w)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errorOutput, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxTransformLog < 0 || c.MaxTransformLog > ntt.MaxSupportedLog {
		return apperrors.NewConfigError("--max-transform-log must be between 1 and %d (or 0 for auto), got %d",
			ntt.MaxSupportedLog, c.MaxTransformLog)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("--workers must not be negative, got %d", c.Workers)
	}
	if _, ok := ui.LookupTheme(c.Theme); c.Theme != "" && !ok {
		return apperrors.NewConfigError("--theme must be one of %s, got %q", strings.Join(ui.ThemeNames(), ", "), c.Theme)
	}
	if c.Quiet && c.Interactive {
		return apperrors.NewConfigError("--quiet cannot be combined with --interactive")
	}
	return nil
}
