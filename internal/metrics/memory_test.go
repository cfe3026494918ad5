package metrics

import (
	"strings"
	"testing"

	"github.com/agbru/bigcalc/internal/ntt"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	table, err := ntt.NewTable(ntt.WithMaxLog(10))
	if err != nil {
		t.Fatal(err)
	}
	mc := NewMemoryCollector(table)
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.TableMaxLog != 10 || snap.TableTopLevel != -1 || snap.TableBytes != 0 {
		t.Errorf("fresh table snapshot = %+v", snap)
	}
	if !strings.Contains(snap.String(), "transform levels none of 10") {
		t.Errorf("String() = %q", snap.String())
	}

	if err := table.EnsureLevel(6); err != nil {
		t.Fatal(err)
	}
	snap = mc.Snapshot()
	if snap.TableTopLevel != 6 || snap.TableBytes != 8*512 {
		t.Errorf("after EnsureLevel(6): %+v", snap)
	}
	if !strings.Contains(snap.String(), "transform levels 0..6 of 10") {
		t.Errorf("String() = %q", snap.String())
	}
}

func TestMemoryCollector_DefaultTable(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector(nil)
	if got := mc.Snapshot().TableMaxLog; got != ntt.Default().MaxLog() {
		t.Errorf("TableMaxLog = %d, want default %d", got, ntt.Default().MaxLog())
	}
}
