package engine

import (
	"testing"
	"time"

	"github.com/liops/vigil/model"
)

func sampleWithCPU(pct float64) model.Sample {
	return model.Sample{Timestamp: time.Now(), CPUPct: model.Float(pct)}
}

func TestHistoryEvictsOldestFIFO(t *testing.T) {
	h := NewHistory(3)
	for _, pct := range []float64{1, 2, 3, 4} {
		h.Push(sampleWithCPU(pct))
	}

	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}

	snap := h.Snapshot()
	want := []float64{2, 3, 4}
	for i, s := range snap {
		if *s.CPUPct != want[i] {
			t.Fatalf("snapshot[%d] cpu = %.0f, want %.0f", i, *s.CPUPct, want[i])
		}
	}
}

func TestHistoryZeroCapacityIsNoop(t *testing.T) {
	h := NewHistory(0)
	h.Push(sampleWithCPU(50))

	if h.Len() != 0 {
		t.Fatalf("len = %d, want 0", h.Len())
	}
	if h.Latest() != nil {
		t.Fatal("Latest() should be nil at capacity 0")
	}
	if snap := h.Snapshot(); len(snap) != 0 {
		t.Fatalf("snapshot length = %d, want 0", len(snap))
	}
}

func TestHistoryLatest(t *testing.T) {
	h := NewHistory(2)
	if h.Latest() != nil {
		t.Fatal("Latest() on empty buffer should be nil")
	}

	h.Push(sampleWithCPU(10))
	h.Push(sampleWithCPU(20))
	h.Push(sampleWithCPU(30))

	latest := h.Latest()
	if latest == nil || *latest.CPUPct != 30 {
		t.Fatalf("Latest() = %+v, want cpu 30", latest)
	}
}
