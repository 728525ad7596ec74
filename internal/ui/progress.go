package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Meter draws progress against the maximum as a filled bar.
type Meter struct {
	bar   progress.Model
	width int
}

// NewMeter creates a meter sized for a terminal of the given width.
func NewMeter(width int) Meter {
	m := Meter{}
	m.SetWidth(width)
	return m
}

// SetWidth resizes the bar, leaving room for the percentage.
func (m *Meter) SetWidth(width int) {
	barWidth := width - 20
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	m.width = barWidth
	m.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
}

// Percent returns value/max clamped into [0, 1]. A non-positive max is 0.
func Percent(value, max int) float64 {
	if max <= 0 || value <= 0 {
		return 0
	}
	if value >= max {
		return 1
	}
	return float64(value) / float64(max)
}

// View renders the bar for value out of max.
func (m Meter) View(value, max int) string {
	pct := Percent(value, max)
	return lipgloss.NewStyle().
		Render(fmt.Sprintf("%s  %3.0f%%", m.bar.ViewAs(pct), pct*100))
}
