package app

import (
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/hierarchy"
)

// OrgChartView is the projected org chart plus the roster.
type OrgChartView struct {
	Forest []*hierarchy.TreeNode
	// Detached holds nodes that cannot reach a root: orphans and parent
	// cycles.
	Detached []domain.RoleNode
	Members  []domain.TeamMember
	// Assigned marks members holding at least one role.
	Assigned map[string]bool
}

// OrgResetResult reports what a reset or import wrote.
type OrgResetResult struct {
	Nodes       int
	Members     int
	Assignments int
}
