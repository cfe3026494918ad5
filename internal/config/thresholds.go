package config

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/ntt"
)

// Resolution chain for tunables (highest priority first):
//   1. CLI flags (--max-transform-log, --workers)
//   2. Environment variables (BIGCALC_MAX_TRANSFORM_LOG, BIGCALC_WORKERS)
//   3. Adaptive hardware estimation (this file)

// ApplyAdaptiveDefaults fills tunables left at zero from hardware
// characteristics, preserving any values set by flags or environment.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.MaxTransformLog == 0 {
		cfg.MaxTransformLog = EstimateMaxTransformLog()
	}
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkers()
	}
	return cfg
}

// EstimateMaxTransformLog picks the transform table order. The root table
// takes 2^(order-1) words, so 32-bit platforms get a smaller table.
func EstimateMaxTransformLog() int {
	wordSize := 32 << (^uint(0) >> 63)

	if wordSize == 64 {
		return ntt.DefaultMaxLog // 4M-point transforms, 16MB of roots
	}
	return 20 // 1M-point transforms, 4MB of roots
}

// EstimateWorkers picks the batch concurrency. Multiplications sharing a
// table serialize, so extra workers only help parsing, formatting and
// additive work.
func EstimateWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return 1
	case numCPU <= 8:
		return numCPU / 2
	default:
		return 4
	}
}
