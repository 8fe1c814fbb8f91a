package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/google/uuid"
)

type commentService struct {
	comments repository.CommentRepo
	observer UseCaseObserver
}

func NewCommentService(comments repository.CommentRepo, observers ...UseCaseObserver) CommentService {
	return &commentService{comments: comments, observer: useCaseObserverOrNoop(observers)}
}

func (s *commentService) Add(ctx context.Context, itemID, userID, content string) (c *domain.Comment, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "comment-add", startedAt, map[string]any{"item_id": itemID}, &err)

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentEmpty
	}
	c = &domain.Comment{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		UserID:    userID,
		Content:   content,
		CreatedAt: startedAt,
	}
	if err = s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}
	return c, nil
}

func (s *commentService) List(ctx context.Context, itemID string) ([]*domain.Comment, error) {
	return s.comments.ListByItem(ctx, itemID)
}

type auditService struct {
	audits repository.AuditLogRepo
}

func NewAuditService(audits repository.AuditLogRepo) AuditService {
	return &auditService{audits: audits}
}

func (s *auditService) List(ctx context.Context, itemID string) ([]*domain.AuditLogEntry, error) {
	return s.audits.ListByItem(ctx, itemID)
}
