package domain

import "time"

// RoleNode is one role in the org-chart forest. A nil ParentID marks a root.
type RoleNode struct {
	ID          string
	ParentID    *string
	Title       string
	Description string
	Level       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMember is a person who can be placed on role nodes.
type TeamMember struct {
	ID        string
	Name      string
	Email     string
	PhotoURL  string
	RoleType  string
	Bio       string
	Skills    []string
	CreatedAt time.Time
}

// Assignment places a member on a node. At most one exists per (node, member).
type Assignment struct {
	ID         string
	NodeID     string
	MemberID   string
	AssignedAt time.Time
}

// Matches reports whether the assignment links nodeID and memberID.
func (a Assignment) Matches(nodeID, memberID string) bool {
	return a.NodeID == nodeID && a.MemberID == memberID
}
