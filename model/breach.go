package model

import (
	"strings"
	"time"
)

// MetricID identifies one monitored metric: "cpu", "memory", or
// "disk:<path>" for a configured mount.
type MetricID string

const (
	MetricCPU    MetricID = "cpu"
	MetricMemory MetricID = "memory"
)

const diskPrefix = "disk:"

// DiskMetric returns the metric ID for a mount path.
func DiskMetric(path string) MetricID {
	return MetricID(diskPrefix + path)
}

// IsDisk reports whether the ID refers to a disk path.
func (id MetricID) IsDisk() bool {
	return strings.HasPrefix(string(id), diskPrefix)
}

// DiskPath returns the mount path of a disk metric, or "" for others.
func (id MetricID) DiskPath() string {
	if !id.IsDisk() {
		return ""
	}
	return strings.TrimPrefix(string(id), diskPrefix)
}

// Breach records one metric strictly exceeding its threshold at a tick.
type Breach struct {
	Metric    MetricID  `json:"metric"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}
