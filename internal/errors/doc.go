// Package apperrors holds the error types shared by bigcalc's packages and
// maps them to process exit codes.
//
// Arithmetic preconditions (a negative difference, a transform larger than
// the table, a non-invertible modulus) are kept apart from input problems
// (malformed digit groups, bad expressions) so the CLI can report each with
// its own exit status. Wrappers implement Unwrap, so callers inspect chains
// with errors.Is and errors.As.
package apperrors
