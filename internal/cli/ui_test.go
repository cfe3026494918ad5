package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli/mocks"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func mustUint(t *testing.T, s string) bigint.Uint {
	t.Helper()
	u, err := bigint.ParseUint(s)
	if err != nil {
		t.Fatalf("ParseUint(%q): %v", s, err)
	}
	return u
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("9", 150)
	tests := []struct {
		name        string
		value       string
		verbose     bool
		contains    []string
		notContains []string
	}{
		{
			name:     "short value",
			value:    "100000",
			contains: []string{"99999 + 1 = 100000"},
		},
		{
			name:        "long value truncated",
			value:       long,
			contains:    []string{strings.Repeat("9", DisplayEdges) + "..." + strings.Repeat("9", DisplayEdges), "150 digits, truncated"},
			notContains: []string{long},
		},
		{
			name:     "verbose shows everything",
			value:    long,
			verbose:  true,
			contains: []string{long, "Digits: 150", "Time: 3ms"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayResult(orchestration.EvaluationResult{
				Expression: "99999 + 1",
				Value:      mustUint(t, tt.value),
				Duration:   3 * time.Millisecond,
			}, tt.verbose, &buf)
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q", unwanted)
				}
			}
		})
	}
}

// TestDisplayProgress drives the progress display with a generated spinner
// mock. It swaps the package-level spinner factory and must not run in
// parallel.
func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mocks.NewMockSpinner(ctrl)

	var mu sync.Mutex
	var suffixes []string
	gomock.InOrder(
		mock.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
			mu.Lock()
			suffixes = append(suffixes, s)
			mu.Unlock()
		}),
		mock.EXPECT().Start(),
	)
	mock.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
		mu.Lock()
		suffixes = append(suffixes, s)
		mu.Unlock()
	}).AnyTimes()
	mock.EXPECT().Stop()

	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = orig }()

	ch := make(chan orchestration.ProgressUpdate, 3)
	ch <- orchestration.ProgressUpdate{Index: 0}
	ch <- orchestration.ProgressUpdate{Index: 1, Err: errors.New("boom")}
	ch <- orchestration.ProgressUpdate{Index: 2}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, ch, 3, io.Discard)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(suffixes) < 4 {
		t.Fatalf("expected at least 4 suffix updates, got %d", len(suffixes))
	}
	if !strings.Contains(suffixes[0], "0/3") {
		t.Errorf("first suffix = %q", suffixes[0])
	}
	last := suffixes[len(suffixes)-1]
	if !strings.Contains(last, "3/3") || !strings.Contains(last, "100.0%") {
		t.Errorf("last suffix = %q", last)
	}
}

func TestDisplayProgress_EmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mocks.NewMockSpinner(ctrl) // no calls expected

	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = orig }()

	ch := make(chan orchestration.ProgressUpdate)
	close(ch)
	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, ch, 0, io.Discard)
	wg.Wait()
}
