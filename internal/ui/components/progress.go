package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certquest/internal/ui/theme"
)

// StatBar displays a labeled horizontal bar, used for the HP gauge.
type StatBar struct {
	Label   string
	Current int
	Max     int
	Width   int
}

// NewStatBar creates a stat bar.
func NewStatBar(label string, current, max, width int) StatBar {
	return StatBar{Label: label, Current: current, Max: max, Width: width}
}

// View renders the bar. The fill turns red below one quarter.
func (b StatBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label) + "  "
	suffix := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d", b.Current, b.Max))

	barWidth := b.Width - lipgloss.Width(label) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	var percent float64
	if b.Max > 0 {
		percent = float64(b.Current) / float64(b.Max)
	}
	filled := int(float64(barWidth) * percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fill := theme.Success
	if b.Max > 0 && b.Current*4 < b.Max {
		fill = theme.Error
	}

	filledStr := lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))
	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))

	return label + filledStr + emptyStr + suffix
}
