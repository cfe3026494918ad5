// Package bigint is the public arithmetic facade of bigcalc.
//
// Uint is an unsigned arbitrary-precision integer stored as base-100000
// digits. Add and Sub propagate carries and borrows slot by slot; Mul
// convolves the digit vectors with a number theoretic transform and then
// propagates carries. Int pairs a Uint magnitude with an explicit Sign.
//
// Parsing is strict by default. ParseUintLenient and ParseIntLenient keep
// the permissive behavior where malformed five-digit groups read as zero.
package bigint
