package ui

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/liops/vigil/config"
	"github.com/liops/vigil/engine"
	"github.com/liops/vigil/model"
)

type stubSampler struct{ calls int }

func (s *stubSampler) Collect(ctx context.Context) (*model.Sample, []error) {
	s.calls++
	return &model.Sample{Timestamp: time.Now(), CPUPct: model.Float(10)}, nil
}

func testModel() Model {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := config.Default()
	cfg.Interval = 1
	mon := engine.NewMonitor(cfg, &stubSampler{}, nil, log)
	return NewModel(mon, cfg)
}

func TestLiveViewSkipsTickWhileCollecting(t *testing.T) {
	m := testModel()
	if !m.inflight {
		t.Fatal("model must start with the initial collection in flight")
	}

	// A tick arriving before the collection finished must not start a
	// second one.
	upd, _ := m.Update(tickMsg(time.Now()))
	m = upd.(Model)
	if !m.inflight {
		t.Fatal("tick during collection must leave the in-flight mark set")
	}

	// The result lands, clearing the mark; the next tick collects again.
	upd, _ = m.Update(collectMsg{Sample: &model.Sample{Timestamp: time.Now()}})
	m = upd.(Model)
	if m.inflight {
		t.Fatal("delivering a result must clear the in-flight mark")
	}

	upd, _ = m.Update(tickMsg(time.Now()))
	m = upd.(Model)
	if !m.inflight {
		t.Fatal("tick after a result must start a new collection")
	}
}

func TestLiveViewPauseSkipsCollection(t *testing.T) {
	m := testModel()
	upd, _ := m.Update(collectMsg{Sample: &model.Sample{Timestamp: time.Now()}})
	m = upd.(Model)

	m.paused = true
	upd, _ = m.Update(tickMsg(time.Now()))
	m = upd.(Model)
	if m.inflight {
		t.Fatal("paused tick must not start a collection")
	}
}
