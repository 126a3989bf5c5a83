package model

import "time"

// Sample holds one point-in-time reading of host resources.
// A nil pointer (or a path missing from Disks) marks a metric that could
// not be read this tick; evaluation skips it.
type Sample struct {
	Timestamp time.Time          `json:"timestamp"`
	CPUPct    *float64           `json:"cpu_pct,omitempty"`
	MemoryPct *float64           `json:"memory_pct,omitempty"`
	Disks     map[string]float64 `json:"disk_pct,omitempty"` // mount path -> used percent

	// Optional readings from the advanced sources. Informational only;
	// no thresholds are bound to them.
	Network   *NetworkStats `json:"network,omitempty"`
	Processes *ProcessStats `json:"processes,omitempty"`
}

// NetworkStats holds cumulative traffic counters across all interfaces.
type NetworkStats struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
}

// ProcessStats holds a coarse view of process activity.
type ProcessStats struct {
	Count int     `json:"count"`
	Load1 float64 `json:"load1"`
}

// Float returns a pointer to v, for building samples.
func Float(v float64) *float64 { return &v }
