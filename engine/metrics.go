package engine

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/liops/vigil/model"
)

// MetricsStore holds the latest tick outcome for the exporter.
type MetricsStore struct {
	mu          sync.RWMutex
	last        TickResult
	ts          time.Time
	alertsTotal map[model.MetricID]uint64
}

// NewMetricsStore creates an empty store.
func NewMetricsStore() *MetricsStore {
	return &MetricsStore{alertsTotal: make(map[model.MetricID]uint64)}
}

// Update stores the latest tick.
func (s *MetricsStore) Update(res TickResult) {
	s.mu.Lock()
	s.last = res
	s.ts = time.Now()
	for _, a := range res.Alerts {
		s.alertsTotal[a.Metric]++
	}
	s.mu.Unlock()
}

// Handler exposes the latest sample in Prometheus text format.
func (s *MetricsStore) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.last.Sample == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("# no data yet\n"))
			return
		}
		writeExposition(w, s.last, s.alertsTotal)
	})
}

func writeExposition(w io.Writer, res TickResult, alertsTotal map[model.MetricID]uint64) {
	write := func(format string, args ...interface{}) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	write("# TYPE vigil_up gauge\n")
	write("vigil_up 1\n")

	sample := res.Sample
	if sample.CPUPct != nil {
		write("# TYPE vigil_cpu_pct gauge\n")
		write("vigil_cpu_pct %f\n", *sample.CPUPct)
	}
	if sample.MemoryPct != nil {
		write("# TYPE vigil_memory_pct gauge\n")
		write("vigil_memory_pct %f\n", *sample.MemoryPct)
	}

	if len(sample.Disks) > 0 {
		paths := make([]string, 0, len(sample.Disks))
		for path := range sample.Disks {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		write("# TYPE vigil_disk_pct gauge\n")
		for _, path := range paths {
			write("vigil_disk_pct{path=%q} %f\n", path, sample.Disks[path])
		}
	}

	if sample.Network != nil {
		write("# TYPE vigil_net_bytes_sent counter\n")
		write("vigil_net_bytes_sent %d\n", sample.Network.BytesSent)
		write("# TYPE vigil_net_bytes_recv counter\n")
		write("vigil_net_bytes_recv %d\n", sample.Network.BytesRecv)
	}
	if sample.Processes != nil {
		write("# TYPE vigil_process_count gauge\n")
		write("vigil_process_count %d\n", sample.Processes.Count)
		write("# TYPE vigil_load1 gauge\n")
		write("vigil_load1 %f\n", sample.Processes.Load1)
	}

	write("# TYPE vigil_breach gauge\n")
	for _, b := range res.Breaches {
		write("vigil_breach{metric=%q} 1\n", string(b.Metric))
	}

	if len(alertsTotal) > 0 {
		ids := make([]string, 0, len(alertsTotal))
		for id := range alertsTotal {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		write("# TYPE vigil_alerts_total counter\n")
		for _, id := range ids {
			write("vigil_alerts_total{metric=%q} %d\n", id, alertsTotal[model.MetricID(id)])
		}
	}
}
