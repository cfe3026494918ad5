// Package logging wraps zerolog behind a small Logger interface with typed
// fields. The app logs JSON to its error stream, or a console format when
// that stream is a terminal.
package logging
