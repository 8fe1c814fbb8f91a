package seed

import (
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/hierarchy"
	"github.com/google/uuid"
)

// assignmentNamespace keeps seed assignment ids stable across resets.
var assignmentNamespace = uuid.MustParse("6f1c2b8e-4d0a-4f59-9a57-2c3e1f7b9d10")

// Convert turns a validated seed into a chart snapshot. Node and member ids
// are kept; levels are derived from the parent chain. Call Validate first.
func Convert(f *File, now time.Time) hierarchy.Snapshot {
	parent := make(map[string]string, len(f.Nodes))
	for _, n := range f.Nodes {
		parent[n.ID] = n.Parent
	}

	snap := hierarchy.Snapshot{
		Members:     make([]domain.TeamMember, 0, len(f.Members)),
		Nodes:       make([]domain.RoleNode, 0, len(f.Nodes)),
		Assignments: make([]domain.Assignment, 0, len(f.Assignments)),
	}

	for _, m := range f.Members {
		snap.Members = append(snap.Members, domain.TeamMember{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			PhotoURL:  m.PhotoURL,
			RoleType:  m.RoleType,
			Bio:       m.Bio,
			Skills:    append([]string{}, m.Skills...),
			CreatedAt: now,
		})
	}

	for _, n := range f.Nodes {
		node := domain.RoleNode{
			ID:          n.ID,
			Title:       n.Title,
			Description: n.Description,
			Level:       depth(n.ID, parent),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if n.Parent != "" {
			node.ParentID = domain.StrPtr(n.Parent)
		}
		snap.Nodes = append(snap.Nodes, node)
	}

	for _, a := range f.Assignments {
		snap.Assignments = append(snap.Assignments, domain.Assignment{
			ID:         uuid.NewSHA1(assignmentNamespace, []byte(a.Node+"/"+a.Member)).String(),
			NodeID:     a.Node,
			MemberID:   a.Member,
			AssignedAt: now,
		})
	}
	return snap
}

// depth counts ancestors. The walk is bounded so an unvalidated cycle
// cannot spin forever.
func depth(id string, parent map[string]string) int {
	d := 0
	for cur := parent[id]; cur != "" && d <= len(parent); cur = parent[cur] {
		d++
	}
	return d
}
