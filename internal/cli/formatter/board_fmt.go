package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cocoon/internal/board"
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// DefaultColumnWidth is the inner width of a board column.
const DefaultColumnWidth = 28

// BoardCursor marks the selected card. A negative Column selects nothing.
type BoardCursor struct {
	Column int
	Row    int
}

// NoCursor renders a board without a selection.
var NoCursor = BoardCursor{Column: -1}

// FormatBoard lays the stage columns out side by side.
func FormatBoard(cols []board.Column, now time.Time, width int, cursor BoardCursor) string {
	if width < 12 {
		width = DefaultColumnWidth
	}
	rendered := make([]string, 0, len(cols))
	for ci, col := range cols {
		selected := -1
		if ci == cursor.Column {
			selected = cursor.Row
		}
		rendered = append(rendered, renderColumn(col, now, width, selected, ci == cursor.Column))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderColumn(col board.Column, now time.Time, width, selected int, focused bool) string {
	border := ColorDim
	if focused {
		border = ColorHeader
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Padding(0, 1)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StagePill(col.Stage), Dim(fmt.Sprintf("(%d)", len(col.Items))))
	b.WriteString(StyleDim.Render(strings.Repeat("─", width-2)))
	if len(col.Items) == 0 {
		b.WriteString("\n" + Dim("empty"))
	}
	for i, it := range col.Items {
		b.WriteString("\n")
		b.WriteString(FormatCard(it, now, width-2, i == selected))
	}
	return style.Render(b.String())
}

// FormatCard renders one item as a compact board card.
func FormatCard(it *domain.Item, now time.Time, width int, selected bool) string {
	marker := "  "
	title := Truncate(it.Title, width-2)
	if selected {
		marker = StyleHeader.Render("▸ ")
		title = StyleYellowBold.Render(title)
	} else {
		title = Bold(title)
	}

	meta := []string{ryGDot(it.RYGStatus), StyleBlue.Render(it.OwnerID), GoodEnoughMeter(it)}
	lines := []string{marker + title, "  " + strings.Join(meta, " ")}
	if it.TimeboxTo != nil {
		lines = append(lines, "  "+TimeboxBadge(*it.TimeboxTo, now))
	}
	if len(it.Tags) > 0 {
		lines = append(lines, "  "+Truncate(Tags(it.Tags), width-2))
	}
	return strings.Join(lines, "\n")
}

func ryGDot(r *domain.RYG) string {
	if r == nil {
		return StyleDim.Render("○")
	}
	return RYGStyle(*r).Render("●")
}

// FormatFilter summarizes the active board filter in one line. A zero
// filter renders as "all items".
func FormatFilter(f board.Filter) string {
	var parts []string
	if f.ThisWeekOnly {
		parts = append(parts, "this week")
	}
	if f.Owner != "" {
		parts = append(parts, "owner="+f.Owner)
	}
	if f.RYG != "" {
		parts = append(parts, "ryg="+string(f.RYG))
	}
	if f.Tag != "" {
		parts = append(parts, "tag="+f.Tag)
	}
	for _, flag := range []struct {
		name string
		v    *bool
	}{{"demo", f.HasDemo}, {"measure", f.HasMeasure}, {"log", f.HasLog}} {
		if flag.v != nil {
			parts = append(parts, fmt.Sprintf("%s=%t", flag.name, *flag.v))
		}
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}
	if len(parts) == 0 {
		return Dim("filter: all items")
	}
	return Dim("filter: ") + StyleBlue.Render(strings.Join(parts, " · "))
}
