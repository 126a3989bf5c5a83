package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/liops/vigil/config"
	"github.com/liops/vigil/model"
)

// Sampler produces one sample per call. Per-metric failures come back as
// errors alongside the (partial) sample.
type Sampler interface {
	Collect(ctx context.Context) (*model.Sample, []error)
}

// TickResult is the outcome of one full cycle.
type TickResult struct {
	Sample   *model.Sample
	Breaches []model.Breach // everything over threshold this tick
	Alerts   []model.Breach // the cooldown-filtered subset that dispatched
}

// Monitor drives the periodic sample → evaluate → filter → dispatch
// cycle. One cycle runs to completion before the next begins; the sleep
// between ticks is the only suspension point and cancellation wakes it
// immediately.
type Monitor struct {
	cfg        *config.Config
	sampler    Sampler
	History    *History
	cooldown   *CooldownTracker
	dispatcher *Dispatcher
	log        *logrus.Logger
	now        func() time.Time

	// OnTick, when set, observes every completed cycle (console report,
	// exporter store, JSONL recorder). It runs on the scheduler
	// goroutine, after cooldown state and history are updated.
	OnTick func(TickResult)
}

// NewMonitor wires a monitor from a validated config.
func NewMonitor(cfg *config.Config, sampler Sampler, notifier Notifier, log *logrus.Logger) *Monitor {
	return &Monitor{
		cfg:        cfg,
		sampler:    sampler,
		History:    NewHistory(cfg.Advanced.HistorySize),
		cooldown:   NewCooldownTracker(cfg.CooldownDuration()),
		dispatcher: NewDispatcher(notifier, log),
		log:        log,
		now:        time.Now,
	}
}

// Run executes cycles until ctx is cancelled. The first cycle runs
// immediately. An in-flight cycle (including dispatch) always finishes
// before Run returns; cancellation is a clean nil return.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.IntervalDuration())
	defer ticker.Stop()

	m.log.Infof("monitor started (interval %s, cooldown %s)",
		m.cfg.IntervalDuration(), m.cfg.CooldownDuration())

	m.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log.Info("monitor stopped")
			return nil
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick runs one full cycle and returns its outcome. Runtime failures are
// contained: sampling errors log at WARNING, dispatch errors at ERROR,
// and the cycle always completes.
func (m *Monitor) Tick(ctx context.Context) TickResult {
	sample, errs := m.sampler.Collect(ctx)
	for _, err := range errs {
		m.log.Warn(err.Error())
	}

	m.History.Push(*sample)

	breaches := Evaluate(sample, m.cfg.Thresholds)
	for _, b := range breaches {
		m.log.WithField("metric", string(b.Metric)).Infof(
			"threshold breach: %.1f%% > %.1f%%", b.Value, b.Threshold)
	}

	alerts := m.cooldown.Filter(breaches, m.now())
	m.dispatcher.Dispatch(alerts)

	res := TickResult{Sample: sample, Breaches: breaches, Alerts: alerts}
	if m.OnTick != nil {
		m.OnTick(res)
	}
	return res
}
