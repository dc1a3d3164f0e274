package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/ui/theme"
)

// Bar displays a horizontal percentage bar with an optional fill color.
// Used for tier breakdown and risk score display.
type Bar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Color       color.Color
}

// NewBar creates a bar with the default fill color.
func NewBar(label string, percent float64, showPercent bool, width int) Bar {
	return Bar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Color:       theme.Secondary,
	}
}

// View renders the bar.
func (b Bar) View() string {
	var result string

	if b.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if b.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := b.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * b.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fill := b.Color
	if fill == nil {
		fill = theme.Secondary
	}

	filledStr := lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if b.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(b.Percent*100)))
	}

	return result
}
