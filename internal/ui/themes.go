package ui

import (
	"os"
	"slices"
	"sync"
)

// Theme maps each role in bigcalc's terminal output to an ANSI escape code.
type Theme struct {
	Name string
	// Result colors computed values.
	Result string
	// Expression colors echoed expressions and configuration values.
	Expression string
	// Muted is for labels, digit counts and truncation notices.
	Muted   string
	Success string
	Warning string
	Error   string

	Bold      string
	Underline string
	Reset     string
}

const (
	bold      = "\033[1m"
	underline = "\033[4m"
	reset     = "\033[0m"
)

// 256-color palettes, one per terminal background.
var (
	DarkTheme = Theme{
		Name:       "dark",
		Result:     "\033[38;5;39m",
		Expression: "\033[38;5;141m",
		Muted:      "\033[38;5;245m",
		Success:    "\033[38;5;82m",
		Warning:    "\033[38;5;220m",
		Error:      "\033[38;5;196m",
		Bold:       bold, Underline: underline, Reset: reset,
	}

	LightTheme = Theme{
		Name:       "light",
		Result:     "\033[38;5;27m",
		Expression: "\033[38;5;54m",
		Muted:      "\033[38;5;240m",
		Success:    "\033[38;5;28m",
		Warning:    "\033[38;5;130m",
		Error:      "\033[38;5;124m",
		Bold:       bold, Underline: underline, Reset: reset,
	}

	// NoColorTheme emits no escape codes at all.
	NoColorTheme = Theme{Name: "none"}
)

var themes = map[string]Theme{
	DarkTheme.Name:    DarkTheme,
	LightTheme.Name:   LightTheme,
	NoColorTheme.Name: NoColorTheme,
}

var (
	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// ThemeNames returns the accepted theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = t
}

// InitTheme selects the theme for a run. Colors are off when noColor is set
// or NO_COLOR is present in the environment (https://no-color.org/);
// otherwise name picks the palette, with unknown or empty names falling
// back to dark.
func InitTheme(name string, noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}
