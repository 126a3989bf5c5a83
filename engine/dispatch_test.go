package engine

import (
	"testing"
	"time"

	"github.com/liops/vigil/model"
)

func TestAlertSubjects(t *testing.T) {
	cases := []struct {
		metric model.MetricID
		want   string
	}{
		{model.MetricCPU, "High CPU Usage Alert"},
		{model.MetricMemory, "High Memory Usage Alert"},
		{model.DiskMetric("/var"), "High Disk Usage Alert"},
	}
	for _, c := range cases {
		if got := AlertSubject(c.metric); got != c.want {
			t.Errorf("AlertSubject(%s) = %q, want %q", c.metric, got, c.want)
		}
	}
}

func TestAlertBodyFormatting(t *testing.T) {
	ts := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)

	b := model.Breach{Metric: model.MetricCPU, Value: 92.5, Threshold: 80, Timestamp: ts}
	want := "CPU usage is 92.5% (threshold 80.0%) at 2026-08-23 14:30:00"
	if got := AlertBody(b); got != want {
		t.Fatalf("body = %q, want %q", got, want)
	}

	d := model.Breach{Metric: model.DiskMetric("/var"), Value: 95, Threshold: 90, Timestamp: ts}
	wantDisk := "Disk usage on /var is 95.0% (threshold 90.0%) at 2026-08-23 14:30:00"
	if got := AlertBody(d); got != wantDisk {
		t.Fatalf("disk body = %q, want %q", got, wantDisk)
	}
}

func TestDispatchWithNilNotifierLogsOnly(t *testing.T) {
	d := NewDispatcher(nil, quietLogger())
	if d.Enabled() {
		t.Fatal("nil notifier must report disabled")
	}
	// Must not panic.
	d.Dispatch([]model.Breach{
		{Metric: model.MetricCPU, Value: 95, Threshold: 80, Timestamp: time.Now()},
	})
}
