// This file provides pooled transform buffers to reduce GC pressure during
// repeated convolutions.

package ntt

import (
	"math/bits"
	"sync"
)

// bufferPools pools []uint64 transform buffers by size class. Classes are
// powers of four from 64 up to 4M coefficients (32MB).
var bufferPools = [...]sync.Pool{
	{New: func() any { return make([]uint64, 64) }},
	{New: func() any { return make([]uint64, 256) }},
	{New: func() any { return make([]uint64, 1024) }},
	{New: func() any { return make([]uint64, 4096) }},
	{New: func() any { return make([]uint64, 16384) }},
	{New: func() any { return make([]uint64, 65536) }},
	{New: func() any { return make([]uint64, 262144) }},
	{New: func() any { return make([]uint64, 1048576) }},
	{New: func() any { return make([]uint64, 4194304) }},
}

// bufferSizes defines the size classes for bufferPools.
var bufferSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304}

// bufferPoolIndex returns the pool index for a given size, or -1 if the size
// is too large for pooling.
//
// Class i holds 4^(i+3) coefficients, so bits.Len(size-1) maps directly to
// the index.
func bufferPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > bufferSizes[len(bufferSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireBuffer gets a zeroed buffer of exactly size elements. Oversized
// requests are allocated directly.
//
// The buffer should be released with releaseBuffer:
//
//	buf := acquireBuffer(n)
//	defer releaseBuffer(buf)
func acquireBuffer(size int) []uint64 {
	idx := bufferPoolIndex(size)
	if idx < 0 {
		return make([]uint64, size)
	}
	buf := bufferPools[idx].Get().([]uint64)
	clear(buf)
	return buf[:size]
}

// releaseBuffer returns a buffer to its pool. Buffers whose capacity is not a
// size class were allocated directly and are left to the GC. Safe to call
// with nil.
func releaseBuffer(buf []uint64) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := bufferPoolIndex(c)
	if idx >= 0 && bufferSizes[idx] == c {
		bufferPools[idx].Put(buf[:c])
	}
}
