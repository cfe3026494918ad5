package cli

import (
	"fmt"
	"io"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the effective configuration: timeout,
// transform capacity, worker count and the host environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	env := sysmon.Sample()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Timeout %s%s%s, parser %s%s%s.\n",
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset(),
		ui.ColorCyan(), parserMode(cfg.Lenient), ui.ColorReset())
	fmt.Fprintf(out, "Transform capacity: 2^%s%d%s slots (%s%d%s operand slots combined), %s%d%s workers.\n",
		ui.ColorCyan(), cfg.MaxTransformLog, ui.ColorReset(),
		ui.ColorCyan(), 1<<cfg.MaxTransformLog, ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%s%s.\n", ui.ColorCyan(), env, ui.ColorReset())
}

func parserMode(lenient bool) string {
	if lenient {
		return "lenient"
	}
	return "strict"
}

// PrintExecutionMode announces how many expressions will run.
func PrintExecutionMode(count int, out io.Writer) {
	var modeDesc string
	if count > 1 {
		modeDesc = fmt.Sprintf("Concurrent batch of %s%d%s expressions", ui.ColorGreen(), count, ui.ColorReset())
	} else {
		modeDesc = "Single expression"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
