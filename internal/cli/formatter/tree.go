package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title string
	Level int
	// Lasts records, for each level from 1 to Level, whether the node on
	// the path at that level is the final sibling. Lasts[Level-1] is the
	// item itself.
	Lasts []bool
	// Vacant dims the title.
	Vacant bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

func (it TreeItem) prefix() string {
	if it.Level == 0 {
		return ""
	}
	var b strings.Builder
	for depth := 1; depth <= it.Level; depth++ {
		last := depth-1 < len(it.Lasts) && it.Lasts[depth-1]
		switch {
		case depth < it.Level && last:
			b.WriteString(treeBlank)
		case depth < it.Level:
			b.WriteString(treePipe)
		case last:
			b.WriteString(treeCorner)
		default:
			b.WriteString(treeBranch)
		}
	}
	return b.String()
}

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		title := item.Title
		if item.Vacant {
			title = Dim(title)
		} else {
			title = Bold(title)
		}
		content := StyleDim.Render(item.prefix()) + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = item.Detail
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxContentWidth - lipgloss.Width(li.content)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}

	return b.String()
}
