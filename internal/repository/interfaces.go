package repository

import (
	"context"

	"github.com/alexanderramin/cocoon/internal/domain"
)

// ItemSort selects the ordering of ItemRepo.List.
type ItemSort int

const (
	// SortCreatedDesc is the default: newest first.
	SortCreatedDesc ItemSort = iota
	SortCreatedAsc
)

// ItemQuery filters ItemRepo.List. Zero values match everything.
type ItemQuery struct {
	Stage   domain.Stage
	OwnerID string
	Sort    ItemSort
}

type ItemRepo interface {
	Create(ctx context.Context, it *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, q ItemQuery) ([]*domain.Item, error)
	// Update applies patch and returns the stored record.
	Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	ListByItem(ctx context.Context, itemID string) ([]*domain.Comment, error)
}

type AuditLogRepo interface {
	Create(ctx context.Context, e *domain.AuditLogEntry) error
	ListByItem(ctx context.Context, itemID string) ([]*domain.AuditLogEntry, error)
}

type RoleNodeRepo interface {
	Create(ctx context.Context, n *domain.RoleNode) error
	List(ctx context.Context) ([]domain.RoleNode, error)
	DeleteAll(ctx context.Context) error
}

type TeamMemberRepo interface {
	Upsert(ctx context.Context, m *domain.TeamMember) error
	List(ctx context.Context) ([]domain.TeamMember, error)
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	// Delete removes the (node, member) pair and reports how many rows went.
	Delete(ctx context.Context, nodeID, memberID string) (int64, error)
	List(ctx context.Context) ([]domain.Assignment, error)
	DeleteAll(ctx context.Context) error
}
