package testutil

import (
	"strings"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/google/uuid"
)

// Item options
type ItemOption func(*domain.Item)

func WithStage(s domain.Stage) ItemOption {
	return func(it *domain.Item) {
		it.Status = s
	}
}

func WithOwner(id string) ItemOption {
	return func(it *domain.Item) {
		it.OwnerID = id
	}
}

func WithCreatedAt(t time.Time) ItemOption {
	return func(it *domain.Item) {
		it.CreatedAt = t
	}
}

func WithF1LockedAt(t time.Time) ItemOption {
	return func(it *domain.Item) {
		it.F1LockedAt = &t
	}
}

func WithProblem(p string) ItemOption {
	return func(it *domain.Item) {
		it.Problem = &p
	}
}

func WithTags(tags ...string) ItemOption {
	return func(it *domain.Item) {
		it.Tags = tags
	}
}

func WithRYG(r domain.RYG) ItemOption {
	return func(it *domain.Item) {
		it.RYGStatus = &r
	}
}

func WithGoodEnough(demo, measure, log bool) ItemOption {
	return func(it *domain.Item) {
		it.GoodEnoughDemo = demo
		it.GoodEnoughMeasure = measure
		it.GoodEnoughLog = log
	}
}

func WithStopReason(r string) ItemOption {
	return func(it *domain.Item) {
		it.StopReason = &r
	}
}

func WithTimebox(from, to time.Time) ItemOption {
	return func(it *domain.Item) {
		it.TimeboxFrom = &from
		it.TimeboxTo = &to
	}
}

// NewTestItem returns a New-stage item owned by "user1". Timestamps are
// truncated to microseconds, the precision the items table keeps.
func NewTestItem(title string, opts ...ItemOption) *domain.Item {
	it := &domain.Item{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.StageNew,
		OwnerID:   "user1",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Tags:      []string{},
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Org-chart options
type NodeOption func(*domain.RoleNode)

func WithParentID(id string) NodeOption {
	return func(n *domain.RoleNode) {
		n.ParentID = &id
	}
}

func WithLevel(l int) NodeOption {
	return func(n *domain.RoleNode) {
		n.Level = l
	}
}

func NewTestNode(id, title string, opts ...NodeOption) *domain.RoleNode {
	now := time.Now().UTC().Truncate(time.Microsecond)
	n := &domain.RoleNode{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func NewTestMember(id, name string, skills ...string) *domain.TeamMember {
	if skills == nil {
		skills = []string{}
	}
	return &domain.TeamMember{
		ID:        id,
		Name:      name,
		Email:     strings.ToLower(name) + "@example.com",
		Skills:    skills,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func NewTestAssignment(nodeID, memberID string) *domain.Assignment {
	return &domain.Assignment{
		ID:         uuid.New().String(),
		NodeID:     nodeID,
		MemberID:   memberID,
		AssignedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}
