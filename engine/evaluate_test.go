package engine

import (
	"testing"
	"time"

	"github.com/liops/vigil/config"
	"github.com/liops/vigil/model"
)

func TestEvaluateBoundaries(t *testing.T) {
	thresholds := config.Thresholds{CPU: 80, Memory: 80, Disk: 90}

	cases := []struct {
		name string
		cpu  float64
		want int
	}{
		{"below", 79.9, 0},
		{"equal_is_not_breach", 80.0, 0},
		{"strictly_above", 80.1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := &model.Sample{Timestamp: time.Now(), CPUPct: model.Float(c.cpu)}
			got := Evaluate(s, thresholds)
			if len(got) != c.want {
				t.Fatalf("cpu=%.1f: got %d breaches, want %d", c.cpu, len(got), c.want)
			}
			if c.want == 1 {
				b := got[0]
				if b.Metric != model.MetricCPU || b.Value != c.cpu || b.Threshold != 80 {
					t.Fatalf("unexpected breach %+v", b)
				}
			}
		})
	}
}

func TestEvaluatePerDiskPath(t *testing.T) {
	thresholds := config.Thresholds{CPU: 80, Memory: 80, Disk: 90}

	s := &model.Sample{
		Timestamp: time.Now(),
		Disks: map[string]float64{
			"/":     95.0,
			"/data": 50.0,
		},
	}

	got := Evaluate(s, thresholds)
	if len(got) != 1 {
		t.Fatalf("got %d breaches, want 1", len(got))
	}
	if got[0].Metric != model.DiskMetric("/") {
		t.Fatalf("breach metric = %s, want disk:/", got[0].Metric)
	}
}

func TestEvaluateSkipsUnavailableMetrics(t *testing.T) {
	thresholds := config.Thresholds{CPU: 80, Memory: 80, Disk: 90}

	// Memory failed to sample this tick, one configured disk path is
	// missing from the sample: neither produces an event, the readable
	// metrics still evaluate.
	s := &model.Sample{
		Timestamp: time.Now(),
		CPUPct:    model.Float(99.0),
		Disks:     map[string]float64{"/": 91.0}, // "/data" unreadable, absent
	}

	got := Evaluate(s, thresholds)
	if len(got) != 2 {
		t.Fatalf("got %d breaches, want 2 (cpu + disk:/)", len(got))
	}
	for _, b := range got {
		if b.Metric == model.MetricMemory || b.Metric == model.DiskMetric("/data") {
			t.Fatalf("unavailable metric %s must not produce events", b.Metric)
		}
	}
}
