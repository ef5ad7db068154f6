package ui

import "github.com/charmbracelet/bubbles/progress"

// DefaultBarWidth is the width of SplitBar when none is given.
const DefaultBarWidth = 30

// SplitBar renders fraction as a filled bar of width cells, without a
// percentage label.
func SplitBar(fraction float64, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	bar := progress.New(
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithSolidFill(secondaryColor),
	)
	return bar.ViewAs(clamp(fraction))
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
