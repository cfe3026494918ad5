package ui

// Color accessors return the escape code of the active theme, so output
// follows InitTheme without callers holding a Theme.

// ColorReset returns the code that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold returns the bold code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the result color.
func ColorBlue() string { return GetCurrentTheme().Result }

// ColorCyan returns the expression color.
func ColorCyan() string { return GetCurrentTheme().Expression }

// ColorGrey returns the muted color.
func ColorGrey() string { return GetCurrentTheme().Muted }

// ErrorColors implements apperrors.ColorProvider with the active theme.
type ErrorColors struct{}

// Red returns the error color.
func (ErrorColors) Red() string { return ColorRed() }

// Yellow returns the warning color.
func (ErrorColors) Yellow() string { return ColorYellow() }

// Reset returns the reset code.
func (ErrorColors) Reset() string { return ColorReset() }
