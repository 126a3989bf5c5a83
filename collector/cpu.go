package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/liops/vigil/model"
)

// cpuSampleWindow is the blocking measurement interval. A zero interval
// diffs against the previous call, which does not exist on the first
// sample of a process and reads as 0% no matter the real load.
const cpuSampleWindow = time.Second

// CPUSource reads total CPU utilization over a short measurement window.
type CPUSource struct{}

func (s *CPUSource) Name() string { return "cpu" }

func (s *CPUSource) Collect(ctx context.Context, sample *model.Sample) error {
	pcts, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err != nil {
		return err
	}
	if len(pcts) == 0 {
		return fmt.Errorf("no cpu reading returned")
	}
	sample.CPUPct = model.Float(pcts[0])
	return nil
}
