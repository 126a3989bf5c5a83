package engine

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"

	"github.com/liops/vigil/model"
)

// rotateBytes is the size at which the rolling sample log is renamed
// aside and restarted.
const rotateBytes = 10 * 1024 * 1024

// tickFrame is one per-tick record in the sample log.
type tickFrame struct {
	Sample   *model.Sample  `json:"sample"`
	Breaches []model.Breach `json:"breaches,omitempty"`
	Alerts   []model.Breach `json:"alerts,omitempty"`
}

// SampleLog appends one JSON line per tick to a rolling file.
type SampleLog struct {
	path string
	mu   sync.Mutex
}

// NewSampleLog creates a writer for the given path.
func NewSampleLog(path string) *SampleLog {
	return &SampleLog{path: path}
}

// Write appends a tick frame, rotating the file once it passes the size
// cap.
func (l *SampleLog) Write(res TickResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if info, err := os.Stat(l.path); err == nil && info.Size() > rotateBytes {
		_ = os.Rename(l.path, l.path+".old")
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tickFrame{
		Sample:   res.Sample,
		Breaches: res.Breaches,
		Alerts:   res.Alerts,
	})
}

// AlertLog appends dispatched alerts to a JSONL file.
type AlertLog struct {
	path string
	mu   sync.Mutex
}

// NewAlertLog creates a writer for the given path.
func NewAlertLog(path string) *AlertLog {
	return &AlertLog{path: path}
}

// Write appends one alert.
func (l *AlertLog) Write(b model.Breach) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(b)
}

// ReadAlertLog reads all alerts from a JSONL file, skipping malformed
// lines. A missing file is not an error.
func ReadAlertLog(path string) ([]model.Breach, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var alerts []model.Breach
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var b model.Breach
		if err := json.Unmarshal(scanner.Bytes(), &b); err != nil {
			continue
		}
		alerts = append(alerts, b)
	}
	return alerts, scanner.Err()
}
