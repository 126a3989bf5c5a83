package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/liops/vigil/config"
	"github.com/liops/vigil/model"
)

var (
	reportOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	reportAlert = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	reportDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderReport formats the per-tick usage report printed in the default
// mode:
//
//	System Resource Usage Report - 2026-08-23 10:00:00
//	============================================================
//	CPU Usage    :  85.0% (Threshold: 80%) - ALERT
//	Memory Usage :  40.1% (Threshold: 80%) - OK
//	Disk /       :  55.0% (Threshold: 90%) - OK
//	============================================================
func renderReport(sample *model.Sample, t config.Thresholds, colors bool) string {
	rule := strings.Repeat("=", 60)
	if colors {
		rule = reportDim.Render(rule)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "System Resource Usage Report - %s\n",
		sample.Timestamp.Format("2006-01-02 15:04:05"))
	sb.WriteString(rule)
	sb.WriteByte('\n')

	sb.WriteString(reportLine("CPU Usage", sample.CPUPct, t.CPU, colors))
	sb.WriteString(reportLine("Memory Usage", sample.MemoryPct, t.Memory, colors))

	paths := make([]string, 0, len(sample.Disks))
	for path := range sample.Disks {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		pct := sample.Disks[path]
		sb.WriteString(reportLine("Disk "+path, &pct, t.Disk, colors))
	}

	sb.WriteString(rule)
	return sb.String()
}

func reportLine(label string, pct *float64, threshold float64, colors bool) string {
	if pct == nil {
		state := "UNAVAILABLE"
		if colors {
			state = reportDim.Render(state)
		}
		return fmt.Sprintf("%-13s:    --%%                   - %s\n", label, state)
	}

	state := "OK"
	if *pct > threshold {
		state = "ALERT"
	}
	if colors {
		if state == "OK" {
			state = reportOK.Render(state)
		} else {
			state = reportAlert.Render(state)
		}
	}
	return fmt.Sprintf("%-13s: %5.1f%% (Threshold: %.0f%%) - %s\n",
		label, *pct, threshold, state)
}
