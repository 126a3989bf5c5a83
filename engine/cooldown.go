package engine

import (
	"sync"
	"time"

	"github.com/liops/vigil/model"
)

// metricState tracks alert suppression for one metric. A metric is in
// one of two states: quiet (last tick had no breach, next breach alerts
// immediately) or alerted (breach is ongoing, repeats are suppressed
// until the cooldown window elapses).
type metricState struct {
	lastAlert time.Time
	alerted   bool
}

// CooldownTracker rate-limits alerts per metric. The window applies only
// to consecutive breaches: a tick with no breach for a metric re-arms it,
// so a fresh incident after recovery alerts immediately regardless of
// wall-clock distance to the previous alert. Safe for concurrent use.
type CooldownTracker struct {
	window time.Duration
	mu     sync.Mutex
	state  map[model.MetricID]*metricState
}

// NewCooldownTracker creates a tracker with the given window. A zero
// window disables suppression.
func NewCooldownTracker(window time.Duration) *CooldownTracker {
	return &CooldownTracker{
		window: window,
		state:  make(map[model.MetricID]*metricState),
	}
}

// Filter returns the breaches eligible for dispatch at now, and records
// each returned event as an alert attempt. Recording happens here, before
// any delivery, so a failing notifier cannot cause an alert storm.
func (t *CooldownTracker) Filter(breaches []model.Breach, now time.Time) []model.Breach {
	t.mu.Lock()
	defer t.mu.Unlock()

	breached := make(map[model.MetricID]bool, len(breaches))

	var out []model.Breach
	for _, b := range breaches {
		breached[b.Metric] = true

		st := t.state[b.Metric]
		if st == nil {
			st = &metricState{}
			t.state[b.Metric] = st
		}

		eligible := !st.alerted || now.Sub(st.lastAlert) >= t.window
		if !eligible {
			continue
		}
		st.lastAlert = now
		st.alerted = true
		out = append(out, b)
	}

	// Recovery: any tracked metric without a breach this tick re-arms.
	for id, st := range t.state {
		if !breached[id] {
			st.alerted = false
		}
	}

	return out
}
