package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/multiplier/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar drawn with block glyphs, so
// it survives output without color.
type ProgressBar struct {
	Label     string
	Current   int
	Total     int
	ShowCount bool
	Width     int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, current, total int, showCount bool, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Current:   current,
		Total:     total,
		ShowCount: showCount,
		Width:     width,
	}
}

// Percent is the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	count := ""
	if p.ShowCount {
		count = fmt.Sprintf("  %d/%d", p.Current, p.Total)
	}

	barWidth := p.Width - lipgloss.Width(result) - len(count)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat("█", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat("░", empty))

	if p.ShowCount {
		result += theme.Hint.Render(count)
	}

	return result
}
