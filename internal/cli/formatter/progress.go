package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampBar(pct float64, width int) (string, string) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled), strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return renderBar(pct, width, style)
}

// RenderConversion renders a whole-percent KPI bar colored by its
// traffic-light classification.
func RenderConversion(percent int, status domain.RYG, width int) string {
	return renderBar(float64(percent)/100, width, RYGStyle(status))
}

func renderBar(pct float64, width int, style lipgloss.Style) string {
	filled, empty := clampBar(pct, width)
	shown := pct
	if shown < 0 {
		shown = 0
	}
	if shown > 1 {
		shown = 1
	}
	return fmt.Sprintf("[%s%s] %3.0f%%", style.Render(filled), StyleDim.Render(empty), shown*100)
}

// GoodEnoughMeter renders the three completion flags as "●●○ 2/3".
func GoodEnoughMeter(it *domain.Item) string {
	n := it.GoodEnoughCount()
	dots := strings.Repeat("●", n) + strings.Repeat("○", 3-n)
	style := StyleDim
	switch {
	case n >= 2:
		style = StyleGreen
	case n == 1:
		style = StyleYellow
	}
	return style.Render(fmt.Sprintf("%s %d/3", dots, n))
}
