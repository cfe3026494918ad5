package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the estimate shown to the user.
const maxETA = 24 * time.Hour

// BatchProgress tracks how many expressions of a batch have completed and
// estimates the remaining time from the average time per expression. It is
// safe for concurrent use.
type BatchProgress struct {
	mu        sync.Mutex
	total     int
	completed int
	startTime time.Time
	now       func() time.Time
}

// NewBatchProgress creates a tracker for total expressions. The clock starts
// immediately.
func NewBatchProgress(total int) *BatchProgress {
	return &BatchProgress{total: total, startTime: time.Now(), now: time.Now}
}

// Complete records n more finished expressions and returns the new fraction
// done and ETA. Counts past the total are clamped.
func (p *BatchProgress) Complete(n int) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n > 0 {
		p.completed = min(p.completed+n, p.total)
	}
	return p.fractionLocked(), p.etaLocked()
}

// Fraction returns the completed share of the batch, in [0, 1].
func (p *BatchProgress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fractionLocked()
}

// ETA returns the estimated remaining time, or 0 before the first
// expression has completed.
func (p *BatchProgress) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked()
}

// Counts returns the number of completed expressions and the total.
func (p *BatchProgress) Counts() (completed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed, p.total
}

func (p *BatchProgress) fractionLocked() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.completed) / float64(p.total)
}

func (p *BatchProgress) etaLocked() time.Duration {
	if p.completed == 0 || p.completed >= p.total {
		return 0
	}
	elapsed := p.now().Sub(p.startTime)
	perItem := elapsed / time.Duration(p.completed)
	eta := perItem * time.Duration(p.total-p.completed)
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an ETA compactly: "< 1s", "45s", "2m30s", "1h15m".
// Non-positive values mean no estimate yet.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func ProgressBar(progress float64, length int) string {
	progress = max(0, min(progress, 1))
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 1m".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), max(0, min(progress, 1))*100, FormatETA(eta))
}
