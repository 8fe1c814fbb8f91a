package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cocoon/internal/app"
	"github.com/alexanderramin/cocoon/internal/hierarchy"
)

// OrgTreeItems flattens the forest into tree rows. Each row's detail lists
// the names assigned to the role.
func OrgTreeItems(forest []*hierarchy.TreeNode) []TreeItem {
	var items []TreeItem
	var path []bool
	hierarchy.Walk(forest, func(n *hierarchy.TreeNode, depth int, last bool) {
		if depth > 0 {
			path = append(path[:depth-1], last)
		} else {
			path = path[:0]
		}
		names := make([]string, 0, len(n.Assignments))
		for _, a := range n.Assignments {
			names = append(names, a.Member.Name)
		}
		item := TreeItem{
			Title:  n.Title,
			Level:  depth,
			Lasts:  append([]bool(nil), path...),
			Vacant: len(names) == 0,
		}
		if len(names) > 0 {
			item.Detail = StyleBlue.Render("[ " + strings.Join(names, ", ") + " ]")
		} else {
			item.Detail = Dim("vacant")
		}
		items = append(items, item)
	})
	return items
}

// FormatOrgTree renders the org chart forest followed by any detached nodes.
func FormatOrgTree(view *app.OrgChartView) string {
	var b strings.Builder
	if len(view.Forest) == 0 {
		b.WriteString(Dim("The org chart is empty.") + "\n")
	} else {
		b.WriteString(RenderTree(OrgTreeItems(view.Forest)))
	}
	if len(view.Detached) > 0 {
		b.WriteString("\n" + Header("Detached roles") + "\n")
		for _, n := range view.Detached {
			parent := placeholder
			if n.ParentID != nil {
				parent = *n.ParentID
			}
			fmt.Fprintf(&b, "%s %s %s\n", StyleRed.Render("!"), n.Title, Dim(fmt.Sprintf("(%s, parent %s)", n.ID, parent)))
		}
	}
	return b.String()
}

// FormatMembers renders the roster with each member's assignment state.
func FormatMembers(view *app.OrgChartView) string {
	headers := []string{"ID", "NAME", "ROLE", "SKILLS", "ASSIGNED"}
	rows := make([][]string, 0, len(view.Members))
	for _, m := range view.Members {
		role := m.RoleType
		if role == "" {
			role = Dim(placeholder)
		}
		skills := Dim(placeholder)
		if len(m.Skills) > 0 {
			skills = strings.Join(m.Skills, ", ")
		}
		rows = append(rows, []string{m.ID, Bold(m.Name), role, skills, Check(view.Assigned[m.ID])})
	}
	return RenderTable(headers, rows, "No team members.")
}

// FormatReset confirms what a reset or import wrote.
func FormatReset(verb string, r app.OrgResetResult) string {
	return fmt.Sprintf("%s org chart: %d roles, %d members, %d assignments\n", verb, r.Nodes, r.Members, r.Assignments)
}
