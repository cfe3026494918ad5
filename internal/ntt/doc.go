// Package ntt implements the number theoretic transform used for big integer
// multiplication.
//
// All arithmetic is done modulo the prime Modulus = 29·2^57+1, which has
// 2^57-th roots of unity. A Table caches powers of a primitive root of unity
// and populates transform levels lazily, so repeated multiplications of
// similar size pay the root computation only once. Convolve is the single
// entry point used by the bigint package:
//
//	table := ntt.Default()
//	coeffs, err := table.Convolve(a, b)
//
// A Table serializes its users with a mutex held for the whole convolution,
// including level population. Independent tables can be created with
// NewTable when callers want separate caches.
package ntt
