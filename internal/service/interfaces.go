package service

import (
	"context"

	"github.com/alexanderramin/cocoon/internal/app"
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/repository"
)

type ItemService interface {
	// Create validates and stores a new item; the owner defaults to userID.
	Create(ctx context.Context, it *domain.Item, userID string) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, q repository.ItemQuery) ([]*domain.Item, error)
	Update(ctx context.Context, id string, patch domain.ItemPatch, userID string) (*domain.Item, error)
	MoveStage(ctx context.Context, id string, stage domain.Stage, userID string) (*domain.Item, error)
	Delete(ctx context.Context, id string, userID string) error
}

type CommentService interface {
	Add(ctx context.Context, itemID, userID, content string) (*domain.Comment, error)
	List(ctx context.Context, itemID string) ([]*domain.Comment, error)
}

type AuditService interface {
	List(ctx context.Context, itemID string) ([]*domain.AuditLogEntry, error)
}

type ReportService interface {
	app.WeeklyReportUseCase
	app.ItemReportUseCase
}

type OrgService interface {
	app.OrgChartUseCase
	// EnsureSeeded loads the seed into an empty store and reports whether it
	// did.
	EnsureSeeded(ctx context.Context) (bool, error)
	Assign(ctx context.Context, nodeID, memberID string) (domain.Assignment, bool, error)
	Unassign(ctx context.Context, nodeID, memberID string) (int, error)
	AddNode(ctx context.Context, parentID *string) (domain.RoleNode, error)
	Reset(ctx context.Context) (*app.OrgResetResult, error)
	Import(ctx context.Context, path string) (*app.OrgResetResult, error)
}
