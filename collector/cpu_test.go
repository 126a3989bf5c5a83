package collector

import (
	"context"
	"testing"

	"github.com/liops/vigil/model"
)

// The very first reading of a process must be meaningful: a diff-based
// sample has nothing to diff against and reads 0% regardless of load,
// which would make a single-shot check unable to detect a CPU breach.
func TestCPUFirstSampleReflectsLoad(t *testing.T) {
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
		}
	}()
	defer close(done)

	var sample model.Sample
	src := &CPUSource{}
	if err := src.Collect(context.Background(), &sample); err != nil {
		t.Skipf("cpu stats unavailable: %v", err)
	}
	if sample.CPUPct == nil {
		t.Fatal("cpu reading missing from sample")
	}
	if *sample.CPUPct <= 0 {
		t.Fatalf("first reading = %.1f%%, want > 0 with a busy core", *sample.CPUPct)
	}
}
