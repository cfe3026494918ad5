package orchestration

import (
	"time"

	"github.com/agbru/bigcalc/internal/format"
)

// ProgressAggregator folds per-expression completion events into overall
// batch progress. It wraps format.BatchProgress. It is meant to be driven by
// a single display goroutine.
type ProgressAggregator struct {
	state  *format.BatchProgress
	total  int
	failed int
}

// NewProgressAggregator creates an aggregator for a batch of total
// expressions. Returns nil if total <= 0.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewBatchProgress(total), total: total}
}

// AggregatedProgress is the batch state after one update.
type AggregatedProgress struct {
	// Index is the expression that just finished.
	Index int
	// Failed reports whether that expression failed.
	Failed bool
	// Completed is the number of finished expressions.
	Completed int
	// Fraction is Completed over the batch size.
	Fraction float64
	// ETA is the estimated remaining time.
	ETA time.Duration
}

// Update records one finished expression.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	if update.Err != nil {
		a.failed++
	}
	fraction, eta := a.state.Complete(1)
	completed, _ := a.state.Counts()
	return AggregatedProgress{
		Index:     update.Index,
		Failed:    update.Err != nil,
		Completed: completed,
		Fraction:  fraction,
		ETA:       eta,
	}
}

// Fraction returns the current completed share without updating.
func (a *ProgressAggregator) Fraction() float64 { return a.state.Fraction() }

// ETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) ETA() time.Duration { return a.state.ETA() }

// Total returns the batch size.
func (a *ProgressAggregator) Total() int { return a.total }

// Failed returns the number of failed expressions seen so far.
func (a *ProgressAggregator) Failed() int { return a.failed }

// IsMultiExpression reports whether the batch has more than one expression.
func (a *ProgressAggregator) IsMultiExpression() bool { return a.total > 1 }

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
