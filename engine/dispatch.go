package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/liops/vigil/model"
)

// Notifier delivers one formatted alert. Transport, TLS, and auth are
// the implementation's concern.
type Notifier interface {
	Send(subject, body string) error
}

// DispatchError wraps a delivery failure for one alert. Deliveries are
// best effort: the error is logged and the tick completes.
type DispatchError struct {
	Metric model.MetricID
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.Metric, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Dispatcher formats breach events and hands them to the notifier.
type Dispatcher struct {
	notifier Notifier
	log      *logrus.Logger
}

// NewDispatcher creates a dispatcher. A nil notifier disables delivery;
// alerts are then only logged.
func NewDispatcher(n Notifier, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{notifier: n, log: log}
}

// Enabled reports whether a notifier is attached.
func (d *Dispatcher) Enabled() bool { return d.notifier != nil }

// Dispatch sends one alert per breach. Failures are logged at ERROR and
// swallowed; the caller has already recorded the attempt for cooldown.
func (d *Dispatcher) Dispatch(breaches []model.Breach) {
	for _, b := range breaches {
		subject := AlertSubject(b.Metric)
		body := AlertBody(b)

		if d.notifier == nil {
			d.log.WithField("metric", string(b.Metric)).Info("alert (delivery disabled): ", body)
			continue
		}
		if err := d.notifier.Send(subject, body); err != nil {
			derr := &DispatchError{Metric: b.Metric, Err: err}
			d.log.WithField("metric", string(b.Metric)).Error(derr.Error())
			continue
		}
		d.log.WithField("metric", string(b.Metric)).Infof("alert sent: %s", subject)
	}
}

// AlertSubject returns the email subject for a metric kind.
func AlertSubject(id model.MetricID) string {
	switch {
	case id == model.MetricCPU:
		return "High CPU Usage Alert"
	case id == model.MetricMemory:
		return "High Memory Usage Alert"
	case id.IsDisk():
		return "High Disk Usage Alert"
	}
	return "Resource Usage Alert"
}

// AlertBody renders the human-readable alert message.
func AlertBody(b model.Breach) string {
	ts := b.Timestamp.Format("2006-01-02 15:04:05")
	switch {
	case b.Metric == model.MetricCPU:
		return fmt.Sprintf("CPU usage is %.1f%% (threshold %.1f%%) at %s", b.Value, b.Threshold, ts)
	case b.Metric == model.MetricMemory:
		return fmt.Sprintf("Memory usage is %.1f%% (threshold %.1f%%) at %s", b.Value, b.Threshold, ts)
	case b.Metric.IsDisk():
		return fmt.Sprintf("Disk usage on %s is %.1f%% (threshold %.1f%%) at %s",
			b.Metric.DiskPath(), b.Value, b.Threshold, ts)
	}
	return fmt.Sprintf("%s is %.1f (threshold %.1f) at %s", b.Metric, b.Value, b.Threshold, ts)
}
