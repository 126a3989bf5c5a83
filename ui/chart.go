package ui

import "strings"

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline renders a fixed-width 0..100 usage series as block
// characters, newest on the right. Shorter series are left-padded.
func sparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var sb strings.Builder
	for i := 0; i < width-len(data); i++ {
		sb.WriteByte(' ')
	}
	for _, v := range data {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		idx := int(v / 100 * float64(len(sparkBlocks)-1))
		sb.WriteRune(sparkBlocks[idx])
	}
	return sb.String()
}
