package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	alertStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	helpStyle  = lipgloss.NewStyle().Foreground(colorGray)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// usageColor styles a usage percentage against its threshold: red above,
// yellow within 10 points below, green otherwise.
func usageColor(pct, threshold float64) lipgloss.Style {
	switch {
	case pct > threshold:
		return alertStyle
	case pct > threshold-10:
		return warnStyle
	default:
		return okStyle
	}
}
