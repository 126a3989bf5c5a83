package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/liops/vigil/model"
)

// MemorySource reads virtual memory utilization.
type MemorySource struct{}

func (s *MemorySource) Name() string { return "memory" }

func (s *MemorySource) Collect(ctx context.Context, sample *model.Sample) error {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return err
	}
	sample.MemoryPct = model.Float(vm.UsedPercent)
	return nil
}
