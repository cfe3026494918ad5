// Package ui provides theme and color support for the command-line output.
// It defines the color schemes and the ANSI escape code accessors used by the
// cli package and by error reporting.
package ui
