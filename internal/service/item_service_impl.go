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

// itemService writes items and their audit entries as two separate
// statements. A failed audit write leaves the item change in place.
type itemService struct {
	items    repository.ItemRepo
	audits   repository.AuditLogRepo
	observer UseCaseObserver
}

func NewItemService(
	items repository.ItemRepo,
	audits repository.AuditLogRepo,
	observers ...UseCaseObserver,
) ItemService {
	return &itemService{
		items:    items,
		audits:   audits,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *itemService) Create(ctx context.Context, it *domain.Item, userID string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": it.Title}
	defer observe(ctx, s.observer, "item-create", startedAt, fields, &err)

	it.Title = strings.TrimSpace(it.Title)
	if it.Title == "" {
		return ErrTitleRequired
	}
	if it.Problem == nil || strings.TrimSpace(*it.Problem) == "" {
		return ErrProblemRequired
	}
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = startedAt
	}
	if it.Status == "" {
		it.Status = domain.StageNew
	}
	if !it.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStage, it.Status)
	}
	if it.Status == domain.StageDone {
		if err = it.CanMarkDone(); err != nil {
			return err
		}
	}
	if it.OwnerID == "" {
		it.OwnerID = userID
	}
	if it.Tags == nil {
		it.Tags = []string{}
	}
	fields["item_id"] = it.ID

	if err = s.items.Create(ctx, it); err != nil {
		return fmt.Errorf("creating item: %w", err)
	}
	return nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, q repository.ItemQuery) ([]*domain.Item, error) {
	return s.items.List(ctx, q)
}

// Update applies patch. Setting the Done stage is checked against the
// merged record before anything is written.
func (s *itemService) Update(ctx context.Context, id string, patch domain.ItemPatch, userID string) (updated *domain.Item, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item_id": id}
	defer observe(ctx, s.observer, "item-update", startedAt, fields, &err)

	if err = validatePatch(patch); err != nil {
		return nil, err
	}

	old, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && *patch.Status == domain.StageDone {
		merged := old.Clone()
		patch.Apply(merged)
		if err = merged.CanMarkDone(); err != nil {
			return nil, err
		}
	}

	updated, err = s.items.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	oldValue, err := snapshotItem(old)
	if err != nil {
		return updated, err
	}
	newValue, err := snapshotItem(updated)
	if err != nil {
		return updated, err
	}
	err = s.recordAudit(ctx, id, userID, domain.AuditItemUpdate, oldValue, newValue, startedAt)
	return updated, err
}

// MoveStage moves the item to stage. Leaving New for Discovery stamps the
// stage-1 exit time unless it is already set.
func (s *itemService) MoveStage(ctx context.Context, id string, stage domain.Stage, userID string) (updated *domain.Item, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item_id": id, "stage": string(stage)}
	defer observe(ctx, s.observer, "item-move-stage", startedAt, fields, &err)

	old, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields["from"] = string(old.Status)

	patch, err := old.StageChange(stage, startedAt)
	if err != nil {
		return nil, err
	}

	updated, err = s.items.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("moving item: %w", err)
	}

	oldValue, err := snapshotStatus(old.Status)
	if err != nil {
		return updated, err
	}
	newValue, err := snapshotStatus(stage)
	if err != nil {
		return updated, err
	}
	err = s.recordAudit(ctx, id, userID, domain.AuditStatusChange, oldValue, newValue, startedAt)
	return updated, err
}

// Delete records the deletion first and then removes the item. Comments go
// with it; audit entries stay. An unknown id is still audited and then
// reported as repository.ErrNotFound.
func (s *itemService) Delete(ctx context.Context, id string, userID string) (err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "item-delete", startedAt, map[string]any{"item_id": id}, &err)

	if err = s.audits.Create(ctx, &domain.AuditLogEntry{
		ID:        uuid.New().String(),
		ItemID:    id,
		UserID:    userID,
		Action:    domain.AuditItemDelete,
		CreatedAt: startedAt,
	}); err != nil {
		return fmt.Errorf("recording deletion: %w", err)
	}
	if err = s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func (s *itemService) recordAudit(ctx context.Context, itemID, userID string, action domain.AuditAction, oldValue, newValue []byte, at time.Time) error {
	err := s.audits.Create(ctx, &domain.AuditLogEntry{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		UserID:    userID,
		Action:    action,
		OldValue:  oldValue,
		NewValue:  newValue,
		CreatedAt: at,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuditNotRecorded, err)
	}
	return nil
}

func validatePatch(p domain.ItemPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Problem != nil && strings.TrimSpace(*p.Problem) == "" {
		return ErrProblemRequired
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStage, *p.Status)
	}
	if p.RYGStatus != nil && *p.RYGStatus != "" {
		if _, err := domain.ParseRYG(string(*p.RYGStatus)); err != nil {
			return err
		}
	}
	return nil
}
