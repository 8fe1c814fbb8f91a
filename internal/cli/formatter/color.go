package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RYGStyle returns the style for a traffic-light value. An unset value is
// dimmed.
func RYGStyle(r domain.RYG) lipgloss.Style {
	switch r {
	case domain.RYGRed:
		return StyleRed
	case domain.RYGYellow:
		return StyleYellow
	case domain.RYGGreen:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RYGIndicator renders a colored dot with the upper-cased value, e.g.
// "● GREEN".
func RYGIndicator(r domain.RYG) string {
	if r == "" {
		return StyleDim.Render("○ --")
	}
	return RYGStyle(r).Render("● " + strings.ToUpper(string(r)))
}

// ItemRYG is RYGIndicator for an item's optional status.
func ItemRYG(r *domain.RYG) string {
	if r == nil {
		return RYGIndicator("")
	}
	return RYGIndicator(*r)
}

// StagePill returns a colored stage label.
func StagePill(s domain.Stage) string {
	switch s {
	case domain.StageNew:
		return StyleBlue.Render("○ " + s.Label())
	case domain.StageDiscovery:
		return StylePurple.Render("◐ " + s.Label())
	case domain.StageDevelopment:
		return StyleYellow.Render("● " + s.Label())
	case domain.StageDone:
		return StyleDim.Render("✔ " + s.Label())
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
