package metrics

import (
	"fmt"
	"math/bits"
	"runtime"

	"github.com/agbru/bigcalc/internal/ntt"
)

// MemorySnapshot holds a point-in-time memory reading together with the
// state of the transform table it was taken for.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by application
	HeapSys     uint64 // bytes obtained from OS for heap
	NumGC       uint32 // number of completed GC cycles
	HeapObjects uint64 // number of allocated heap objects

	TableMaxLog   int // largest supported transform order
	TableTopLevel int // highest populated transform order, -1 if none
	TableBytes    int // size of the root backing array once allocated
}

// MemoryCollector reads runtime memory statistics and the transform table
// state.
type MemoryCollector struct {
	table *ntt.Table
}

// NewMemoryCollector creates a collector reporting on table. A nil table
// means ntt.Default().
func NewMemoryCollector(table *ntt.Table) *MemoryCollector {
	if table == nil {
		table = ntt.Default()
	}
	return &MemoryCollector{table: table}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	levels := mc.table.PopulatedLevels()
	s := MemorySnapshot{
		HeapAlloc:     m.HeapAlloc,
		HeapSys:       m.HeapSys,
		NumGC:         m.NumGC,
		HeapObjects:   m.HeapObjects,
		TableMaxLog:   mc.table.MaxLog(),
		TableTopLevel: bits.Len64(levels) - 1,
	}
	if s.TableTopLevel >= 0 {
		s.TableBytes = 8 << (s.TableMaxLog - 1)
	}
	return s
}

// String renders the snapshot on one line for the REPL status command.
func (s MemorySnapshot) String() string {
	levels := "none"
	if s.TableTopLevel >= 0 {
		levels = fmt.Sprintf("0..%d", s.TableTopLevel)
	}
	return fmt.Sprintf("heap %s (sys %s, %d objects), %d GC cycles; transform levels %s of %d, roots %s",
		mib(s.HeapAlloc), mib(s.HeapSys), s.HeapObjects, s.NumGC, levels, s.TableMaxLog, mib(uint64(s.TableBytes)))
}

func mib(b uint64) string {
	return fmt.Sprintf("%.1f MiB", float64(b)/(1<<20))
}
