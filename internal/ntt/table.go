package ntt

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/modarith"
)

const (
	// Modulus is the transform prime, 29·2^57+1.
	Modulus uint64 = 4179340454199820289
	// PrimitiveRoot generates the multiplicative group modulo Modulus.
	PrimitiveRoot uint64 = 3
	// MaxSupportedLog is the largest table order accepted by NewTable.
	// Convolving base-100000 slots stays exact while
	// min(len(a), len(b))·99999² < Modulus, which holds for every
	// transform of at most 2^MaxSupportedLog points.
	MaxSupportedLog = 26
	// DefaultMaxLog is the order of the process-wide table.
	DefaultMaxLog = 22
)

// Observer receives timing events from a Table. Implementations must be
// safe for concurrent use and must not call back into the Table.
type Observer interface {
	ObserveLevel(order int, elapsed time.Duration)
	ObserveConvolution(size int, elapsed time.Duration)
}

// Table is a lazily populated cache of roots of unity modulo Modulus.
//
// A single backing array of 2^(maxLog-1) slots holds w^i where w is a
// primitive 2^maxLog-th root of unity. The roots of a transform of order k
// are the entries at stride 2^(maxLog-k), so every coarser level is a subset
// of every finer one and a bit in levels records each usable order.
type Table struct {
	mu     sync.Mutex
	roots  []uint64
	maxLog int
	levels uint64

	logger   zerolog.Logger
	observer Observer
	warmed   atomic.Bool
}

// Option configures a Table.
type Option func(*Table)

// WithMaxLog sets the largest transform order the table supports.
func WithMaxLog(maxLog int) Option {
	return func(t *Table) { t.maxLog = maxLog }
}

// WithLogger attaches a logger for level population events.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// WithObserver attaches an Observer, typically a metrics collector.
func WithObserver(o Observer) Option {
	return func(t *Table) { t.observer = o }
}

// NewTable creates an empty table. No roots are computed until a level is
// first needed.
//
// Returns:
//   - *Table: The configured table.
//   - error: A ValidationError if the maximum order is outside [1, MaxSupportedLog].
func NewTable(opts ...Option) (*Table, error) {
	t := &Table{maxLog: DefaultMaxLog, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxLog < 1 || t.maxLog > MaxSupportedLog {
		return nil, apperrors.ValidationError{
			Field:   "max-transform-log",
			Message: "must be between 1 and 26",
		}
	}
	return t, nil
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// Default returns the process-wide table, creating it on first use with
// DefaultMaxLog.
func Default() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = &Table{maxLog: DefaultMaxLog, logger: zerolog.Nop()}
	})
	return defaultTable
}

// MaxLog returns the largest supported transform order.
func (t *Table) MaxLog() int { return t.maxLog }

// MaxSize returns the largest supported transform length, 2^MaxLog.
func (t *Table) MaxSize() int { return 1 << t.maxLog }

// PopulatedLevels returns the bitmask of populated orders. Bit k is set when
// transforms of length 2^k can run without computing new roots.
func (t *Table) PopulatedLevels() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.levels
}

// EnsureLevel makes the roots for transforms of length 2^order available.
// It is a no-op for levels already populated.
func (t *Table) EnsureLevel(order int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ensureLevel(order)
}

// ensureLevel requires t.mu to be held.
func (t *Table) ensureLevel(order int) error {
	if order < 0 || order > t.maxLog {
		return &apperrors.SizeExceededError{Requested: 1 << max(order, 0), Max: t.MaxSize()}
	}
	if t.levels&(1<<order) != 0 {
		return nil
	}
	start := time.Now()
	if t.roots == nil {
		t.roots = make([]uint64, 1<<(t.maxLog-1))
	}

	half := (1 << order) >> 1
	stride := 1 << (t.maxLog - order)
	w := modarith.PowMod(PrimitiveRoot, (Modulus-1)>>order, Modulus)

	// Even positions already hold the next coarser level's roots. Level 0
	// stores none, so level 1 always writes roots[0].
	first, step := 0, 1
	if order > 1 && t.levels&(1<<(order-1)) != 0 {
		first, step = 1, 2
	}
	cur := modarith.PowMod(w, uint64(first), Modulus)
	mul := modarith.PowMod(w, uint64(step), Modulus)
	for j := first; j < half; j += step {
		t.roots[j*stride] = cur
		cur = modarith.MulMod(cur, mul, Modulus)
	}

	t.levels |= (1 << (order + 1)) - 1
	elapsed := time.Since(start)
	t.logger.Debug().
		Int("order", order).
		Int("roots", half).
		Dur("elapsed", elapsed).
		Msg("populated transform level")
	if t.observer != nil {
		t.observer.ObserveLevel(order, elapsed)
	}
	return nil
}
