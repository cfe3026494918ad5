package ntt

import "testing"

func TestBufferPool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		size    int
		wantCap int
	}{
		{"small", 10, 64},
		{"exact", 256, 256},
		{"medium", 257, 1024},
		{"large", 5000, 16384},
		{"too_large", 5000000, 5000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := acquireBuffer(tt.size)
			if len(buf) != tt.size {
				t.Errorf("acquireBuffer(%d) got length %d", tt.size, len(buf))
			}
			if cap(buf) != tt.wantCap {
				t.Errorf("acquireBuffer(%d) got capacity %d, want %d", tt.size, cap(buf), tt.wantCap)
			}
			for i := range buf {
				if buf[i] != 0 {
					t.Errorf("acquireBuffer(%d) not zeroed at index %d", tt.size, i)
					break
				}
			}
			buf[0] = 42
			releaseBuffer(buf)
		})
	}
	releaseBuffer(nil)
}

func TestBufferPoolIndex(t *testing.T) {
	t.Parallel()
	for size := 1; size <= bufferSizes[len(bufferSizes)-1]; size = size*3 + 1 {
		idx := bufferPoolIndex(size)
		if idx < 0 || bufferSizes[idx] < size {
			t.Fatalf("bufferPoolIndex(%d) = %d, class too small", size, idx)
		}
		if idx > 0 && bufferSizes[idx-1] >= size {
			t.Fatalf("bufferPoolIndex(%d) = %d, a smaller class fits", size, idx)
		}
	}
	if bufferPoolIndex(bufferSizes[len(bufferSizes)-1]+1) != -1 {
		t.Error("oversized request should not be pooled")
	}
}

func BenchmarkConvolve(b *testing.B) {
	table, err := NewTable(WithMaxLog(16))
	if err != nil {
		b.Fatal(err)
	}
	x := make([]uint64, 4096)
	for i := range x {
		x[i] = uint64(i*7919) % 100000
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := table.Convolve(x, x); err != nil {
			b.Fatal(err)
		}
	}
}
