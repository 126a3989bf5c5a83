// Package ui renders the live terminal view: current readings with
// threshold coloring, a usage history sparkline, and recent alerts.
package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/liops/vigil/config"
	"github.com/liops/vigil/engine"
	"github.com/liops/vigil/model"
)

const maxRecentAlerts = 8

type tickMsg time.Time

type collectMsg engine.TickResult

// Model is the bubbletea model for the live view.
type Model struct {
	monitor  *engine.Monitor
	cfg      *config.Config
	interval time.Duration
	width    int
	height   int

	last     *engine.TickResult
	alerts   []model.Breach // newest first
	paused   bool
	inflight bool // a collection command is running; do not start another
}

// NewModel creates the live-view model around a monitor. The view owns
// the tick cadence; the monitor's Run loop is not used in this mode.
// Cycles never overlap: a tick that fires while a collection is still
// running is skipped, matching the serialized Run loop.
func NewModel(m *engine.Monitor, cfg *config.Config) Model {
	return Model{
		monitor:  m,
		cfg:      cfg,
		interval: cfg.IntervalDuration(),
		inflight: true, // Init issues the first collection
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), collectOnce(m.monitor))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func collectOnce(mon *engine.Monitor) tea.Cmd {
	return func() tea.Msg {
		return collectMsg(mon.Tick(context.Background()))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.paused || m.inflight {
			return m, tick(m.interval)
		}
		m.inflight = true
		return m, tea.Batch(tick(m.interval), collectOnce(m.monitor))

	case collectMsg:
		m.inflight = false
		res := engine.TickResult(msg)
		m.last = &res
		for _, a := range res.Alerts {
			m.alerts = append([]model.Breach{a}, m.alerts...)
		}
		if len(m.alerts) > maxRecentAlerts {
			m.alerts = m.alerts[:maxRecentAlerts]
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.last == nil || m.last.Sample == nil {
		return dimStyle.Render("collecting first sample...")
	}
	sample := m.last.Sample

	var sections []string
	sections = append(sections, m.viewUsage(sample))
	sections = append(sections, m.viewTrend())
	sections = append(sections, m.viewAlerts())

	header := titleStyle.Render("vigil") +
		dimStyle.Render(fmt.Sprintf("  %s  interval %s",
			sample.Timestamp.Format("15:04:05"), m.interval))
	if m.paused {
		header += warnStyle.Render("  [paused]")
	}

	help := helpStyle.Render("q quit · p pause")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinVertical(lipgloss.Left, sections...),
		help,
	)
}

func (m Model) viewUsage(sample *model.Sample) string {
	var rows []string
	rows = append(rows, usageRow("CPU", sample.CPUPct, m.cfg.Thresholds.CPU))
	rows = append(rows, usageRow("Memory", sample.MemoryPct, m.cfg.Thresholds.Memory))

	paths := make([]string, 0, len(m.cfg.Advanced.DiskPaths))
	paths = append(paths, m.cfg.Advanced.DiskPaths...)
	sort.Strings(paths)
	for _, path := range paths {
		if pct, ok := sample.Disks[path]; ok {
			rows = append(rows, usageRow("Disk "+path, &pct, m.cfg.Thresholds.Disk))
		} else {
			rows = append(rows, fmt.Sprintf("%s %s",
				labelStyle.Render(fmt.Sprintf("%-14s", "Disk "+path)),
				dimStyle.Render("unavailable")))
		}
	}

	if sample.Processes != nil {
		rows = append(rows, fmt.Sprintf("%s %s",
			labelStyle.Render(fmt.Sprintf("%-14s", "Processes")),
			valueStyle.Render(fmt.Sprintf("%d (load1 %.2f)",
				sample.Processes.Count, sample.Processes.Load1))))
	}
	if sample.Network != nil {
		rows = append(rows, fmt.Sprintf("%s %s",
			labelStyle.Render(fmt.Sprintf("%-14s", "Network")),
			valueStyle.Render(fmt.Sprintf("tx %s rx %s",
				fmtBytes(sample.Network.BytesSent), fmtBytes(sample.Network.BytesRecv)))))
	}

	return panelStyle.Render(strings.Join(rows, "\n"))
}

func usageRow(label string, pct *float64, threshold float64) string {
	name := labelStyle.Render(fmt.Sprintf("%-14s", label))
	if pct == nil {
		return fmt.Sprintf("%s %s", name, dimStyle.Render("unavailable"))
	}
	val := usageColor(*pct, threshold).Render(fmt.Sprintf("%5.1f%%", *pct))
	limit := dimStyle.Render(fmt.Sprintf(" (threshold %.0f%%)", threshold))
	state := okStyle.Render("OK")
	if *pct > threshold {
		state = alertStyle.Render("ALERT")
	}
	return fmt.Sprintf("%s %s%s  %s", name, val, limit, state)
}

func (m Model) viewTrend() string {
	samples := m.monitor.History.Snapshot()
	if len(samples) < 2 {
		return panelStyle.Render(dimStyle.Render("history: collecting..."))
	}

	width := m.width - 20
	if width < 20 {
		width = 20
	}

	var cpu, memory []float64
	for _, s := range samples {
		if s.CPUPct != nil {
			cpu = append(cpu, *s.CPUPct)
		}
		if s.MemoryPct != nil {
			memory = append(memory, *s.MemoryPct)
		}
	}

	rows := []string{
		labelStyle.Render("cpu    ") + valueStyle.Render(sparkline(cpu, width)),
		labelStyle.Render("memory ") + valueStyle.Render(sparkline(memory, width)),
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) viewAlerts() string {
	if len(m.alerts) == 0 {
		return panelStyle.Render(dimStyle.Render("no alerts"))
	}
	var rows []string
	for _, a := range m.alerts {
		rows = append(rows, fmt.Sprintf("%s %s %s",
			dimStyle.Render(a.Timestamp.Format("15:04:05")),
			alertStyle.Render(string(a.Metric)),
			valueStyle.Render(fmt.Sprintf("%.1f%% > %.1f%%", a.Value, a.Threshold))))
	}
	return panelStyle.Render(titleStyle.Render("recent alerts") + "\n" + strings.Join(rows, "\n"))
}

func fmtBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1fG", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%dB", b)
	}
}
