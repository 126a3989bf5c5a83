package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/liops/vigil/model"
)

// NetworkSource reads cumulative traffic counters summed over all
// interfaces. Enabled by advanced.network_monitor.
type NetworkSource struct{}

func (s *NetworkSource) Name() string { return "network" }

func (s *NetworkSource) Collect(ctx context.Context, sample *model.Sample) error {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return err
	}
	if len(counters) == 0 {
		return fmt.Errorf("no interface counters returned")
	}
	total := counters[0] // pernic=false aggregates into one entry
	sample.Network = &model.NetworkStats{
		BytesSent:   total.BytesSent,
		BytesRecv:   total.BytesRecv,
		PacketsSent: total.PacketsSent,
		PacketsRecv: total.PacketsRecv,
	}
	return nil
}
