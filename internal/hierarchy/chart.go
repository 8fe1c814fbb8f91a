package hierarchy

import (
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/google/uuid"
)

const (
	// NewNodeTitle and NewNodeDescription are the placeholders AddNode uses.
	NewNodeTitle       = "New Role"
	NewNodeDescription = "Define the responsibilities for this role"
)

// Snapshot is a full copy of the flat chart lists.
type Snapshot struct {
	Members     []domain.TeamMember
	Nodes       []domain.RoleNode
	Assignments []domain.Assignment
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Members:     append([]domain.TeamMember(nil), s.Members...),
		Nodes:       append([]domain.RoleNode(nil), s.Nodes...),
		Assignments: append([]domain.Assignment(nil), s.Assignments...),
	}
}

// Chart is the canonical flat state of an org chart. The nested view is
// derived on demand by Tree; nothing here keeps child lists.
type Chart struct {
	initial Snapshot
	current Snapshot
	now     func() time.Time
	newID   func() string
}

// Option configures a Chart.
type Option func(*Chart)

// WithClock overrides the time source used for new records.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) { c.now = now }
}

// WithIDGenerator overrides how new record ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(c *Chart) { c.newID = gen }
}

// NewChart returns a chart whose working state and reset point are initial.
func NewChart(initial Snapshot, opts ...Option) *Chart {
	c := &Chart{
		initial: initial.clone(),
		current: initial.clone(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the working state without touching the reset point.
func (c *Chart) Load(s Snapshot) {
	c.current = s.clone()
}

// Snapshot returns a copy of the working state.
func (c *Chart) Snapshot() Snapshot {
	return c.current.clone()
}

// Tree projects the working state into the decorated forest.
func (c *Chart) Tree() []*TreeNode {
	return BuildTree(c.current.Nodes, c.current.Assignments, c.current.Members)
}

// Assign places memberID on nodeID. It is a no-op when the pair already
// exists; otherwise the new assignment is appended and returned with true.
func (c *Chart) Assign(nodeID, memberID string) (domain.Assignment, bool) {
	for _, a := range c.current.Assignments {
		if a.Matches(nodeID, memberID) {
			return a, false
		}
	}
	a := domain.Assignment{
		ID:         c.newID(),
		NodeID:     nodeID,
		MemberID:   memberID,
		AssignedAt: c.now(),
	}
	c.current.Assignments = append(c.current.Assignments, a)
	return a, true
}

// Unassign removes every assignment of memberID on nodeID and returns the
// removed rows. Removing a pair that was never assigned changes nothing.
func (c *Chart) Unassign(nodeID, memberID string) []domain.Assignment {
	var removed []domain.Assignment
	kept := c.current.Assignments[:0:0]
	for _, a := range c.current.Assignments {
		if a.Matches(nodeID, memberID) {
			removed = append(removed, a)
			continue
		}
		kept = append(kept, a)
	}
	c.current.Assignments = kept
	return removed
}

// AddNode appends a placeholder role under parentID (nil for a new root).
// Its level is one below the parent's, or 0 when the parent is nil or
// unknown. An unknown parent id is kept, which makes the node an orphan.
func (c *Chart) AddNode(parentID *string) domain.RoleNode {
	level := 0
	if parentID != nil {
		for _, n := range c.current.Nodes {
			if n.ID == *parentID {
				level = n.Level + 1
				break
			}
		}
	}
	now := c.now()
	n := domain.RoleNode{
		ID:          c.newID(),
		Title:       NewNodeTitle,
		Description: NewNodeDescription,
		Level:       level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if parentID != nil {
		p := *parentID
		n.ParentID = &p
	}
	c.current.Nodes = append(c.current.Nodes, n)
	return n
}

// Reset restores the node and assignment lists to the initial snapshot.
// Members are left as they are.
func (c *Chart) Reset() {
	init := c.initial.clone()
	c.current.Nodes = init.Nodes
	c.current.Assignments = init.Assignments
}

// AssignedMemberIDs returns the set of members holding at least one role.
func (c *Chart) AssignedMemberIDs() map[string]bool {
	out := make(map[string]bool, len(c.current.Assignments))
	for _, a := range c.current.Assignments {
		out[a.MemberID] = true
	}
	return out
}
