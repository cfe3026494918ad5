// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultsToFile].

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet prints only the bare values.
	Quiet bool
	// Verbose shows full values with digit counts and timings.
	Verbose bool
}

// WriteResultsToFile writes the full values of a batch to config.OutputFile.
// Failed expressions are written as comments. Missing parent directories are
// created.
func WriteResultsToFile(results []orchestration.EvaluationResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# bigcalc results\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Expressions: %d\n", len(results))
	for _, res := range results {
		fmt.Fprintln(w)
		if res.Err != nil {
			fmt.Fprintf(w, "# [%d] %s failed: %v\n", res.Index, res.Expression, res.Err)
			continue
		}
		fmt.Fprintf(w, "# [%d] %s (%d digits, %s)\n", res.Index, res.Expression, res.Value.DecimalLen(), res.Duration)
		fmt.Fprintln(w, res.Value.String())
	}
	if err := w.Flush(); err != nil {
		return apperrors.WrapError(err, "failed to write output file")
	}
	return file.Close()
}

// FormatQuietResult formats a result for quiet mode: the bare decimal value,
// suitable for scripting.
func FormatQuietResult(result orchestration.EvaluationResult) string {
	return result.Value.String()
}

// DisplayQuietResult outputs a result in quiet mode.
func DisplayQuietResult(out io.Writer, result orchestration.EvaluationResult) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig displays a result in the mode selected by config.
func DisplayResultWithConfig(out io.Writer, result orchestration.EvaluationResult, config OutputConfig) {
	if config.Quiet {
		DisplayQuietResult(out, result)
		return
	}
	DisplayResult(result, config.Verbose, out)
}

// DisplaySavedNotice confirms where the results were written.
func DisplaySavedNotice(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
