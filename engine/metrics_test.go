package engine

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/liops/vigil/model"
)

func TestMetricsHandlerBeforeFirstTick(t *testing.T) {
	store := NewMetricsStore()
	rec := httptest.NewRecorder()
	store.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 503 {
		t.Fatalf("status = %d, want 503 before any sample", rec.Code)
	}
}

func TestMetricsExposition(t *testing.T) {
	store := NewMetricsStore()
	res := TickResult{
		Sample: &model.Sample{
			Timestamp: time.Now(),
			CPUPct:    model.Float(91.5),
			Disks:     map[string]float64{"/": 42},
		},
		Breaches: []model.Breach{
			{Metric: model.MetricCPU, Value: 91.5, Threshold: 80},
		},
		Alerts: []model.Breach{
			{Metric: model.MetricCPU, Value: 91.5, Threshold: 80},
		},
	}
	store.Update(res)
	store.Update(res) // second alert increments the counter

	rec := httptest.NewRecorder()
	store.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		"vigil_up 1",
		"vigil_cpu_pct 91.5",
		`vigil_disk_pct{path="/"} 42`,
		`vigil_breach{metric="cpu"} 1`,
		`vigil_alerts_total{metric="cpu"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "vigil_memory_pct") {
		t.Error("unavailable memory must not be exported")
	}
}
