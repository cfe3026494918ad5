// Package format holds the display helpers shared by the CLI: durations,
// digit grouping and truncation of long results, and the batch progress bar
// with its ETA estimate.
package format
