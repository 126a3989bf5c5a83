package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/liops/vigil/model"
)

// ProcessSource reads a coarse process-activity view: live process count
// and the 1-minute load average. Enabled by advanced.process_monitor.
type ProcessSource struct{}

func (s *ProcessSource) Name() string { return "process" }

func (s *ProcessSource) Collect(ctx context.Context, sample *model.Sample) error {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return err
	}

	stats := &model.ProcessStats{Count: len(pids)}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		stats.Load1 = avg.Load1
	}
	sample.Processes = stats
	return nil
}
