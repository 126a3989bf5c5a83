package engine

import (
	"sort"

	"github.com/liops/vigil/config"
	"github.com/liops/vigil/model"
)

// Evaluate classifies a sample against the loaded thresholds and returns
// a breach event per metric strictly above its limit. Equality is not a
// breach. Metrics absent from the sample (unavailable this tick) produce
// nothing: skip, not failure.
func Evaluate(s *model.Sample, t config.Thresholds) []model.Breach {
	var breaches []model.Breach

	if s.CPUPct != nil && *s.CPUPct > t.CPU {
		breaches = append(breaches, model.Breach{
			Metric:    model.MetricCPU,
			Value:     *s.CPUPct,
			Threshold: t.CPU,
			Timestamp: s.Timestamp,
		})
	}
	if s.MemoryPct != nil && *s.MemoryPct > t.Memory {
		breaches = append(breaches, model.Breach{
			Metric:    model.MetricMemory,
			Value:     *s.MemoryPct,
			Threshold: t.Memory,
			Timestamp: s.Timestamp,
		})
	}

	// Each mount path is an independent metric. Sort for stable output.
	paths := make([]string, 0, len(s.Disks))
	for path := range s.Disks {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if pct := s.Disks[path]; pct > t.Disk {
			breaches = append(breaches, model.Breach{
				Metric:    model.DiskMetric(path),
				Value:     pct,
				Threshold: t.Disk,
				Timestamp: s.Timestamp,
			})
		}
	}

	return breaches
}
