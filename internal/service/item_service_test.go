package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/alexanderramin/cocoon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "user1"

type itemFixture struct {
	svc      ItemService
	items    repository.ItemRepo
	audits   repository.AuditLogRepo
	comments repository.CommentRepo
}

func setupItemService(t *testing.T) itemFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	items := repository.NewSQLiteItemRepo(db)
	audits := repository.NewSQLiteAuditLogRepo(db)
	return itemFixture{
		svc:      NewItemService(items, audits),
		items:    items,
		audits:   audits,
		comments: repository.NewSQLiteCommentRepo(db),
	}
}

func createItem(t *testing.T, f itemFixture, opts ...testutil.ItemOption) *domain.Item {
	t.Helper()
	it := testutil.NewTestItem("Smarter triage", append([]testutil.ItemOption{testutil.WithProblem("Slow routing")}, opts...)...)
	require.NoError(t, f.items.Create(context.Background(), it))
	return it
}

func TestItemService_Create_Defaults(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()

	it := &domain.Item{Title: "  Smarter triage ", Problem: domain.StrPtr("Slow routing")}
	require.NoError(t, f.svc.Create(ctx, it, testUser))

	assert.NotEmpty(t, it.ID)
	assert.Equal(t, "Smarter triage", it.Title)
	assert.Equal(t, domain.StageNew, it.Status)
	assert.Equal(t, testUser, it.OwnerID)
	assert.False(t, it.CreatedAt.IsZero())

	stored, err := f.svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smarter triage", stored.Title)
	assert.NotNil(t, stored.Tags)
}

func TestItemService_Create_RequiredFields(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()

	err := f.svc.Create(ctx, &domain.Item{Title: "   ", Problem: domain.StrPtr("p")}, testUser)
	assert.ErrorIs(t, err, ErrTitleRequired)

	err = f.svc.Create(ctx, &domain.Item{Title: "t"}, testUser)
	assert.ErrorIs(t, err, ErrProblemRequired)

	err = f.svc.Create(ctx, &domain.Item{Title: "t", Problem: domain.StrPtr(" ")}, testUser)
	assert.ErrorIs(t, err, ErrProblemRequired)

	items, err := f.svc.List(ctx, repository.ItemQuery{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemService_Create_DoneRequiresCriteria(t *testing.T) {
	f := setupItemService(t)
	it := &domain.Item{Title: "t", Problem: domain.StrPtr("p"), Status: domain.StageDone, GoodEnoughDemo: true}
	assert.ErrorIs(t, f.svc.Create(context.Background(), it, testUser), domain.ErrDoneCriteriaUnmet)
}

func TestItemService_MoveStage_StampsStageOneExitOnce(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()
	it := createItem(t, f)

	before := time.Now().UTC().Add(-time.Second)
	moved, err := f.svc.MoveStage(ctx, it.ID, domain.StageDiscovery, testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.StageDiscovery, moved.Status)
	require.NotNil(t, moved.F1LockedAt)
	assert.True(t, moved.F1LockedAt.After(before))
	first := *moved.F1LockedAt

	_, err = f.svc.MoveStage(ctx, it.ID, domain.StageNew, testUser)
	require.NoError(t, err)
	again, err := f.svc.MoveStage(ctx, it.ID, domain.StageDiscovery, testUser)
	require.NoError(t, err)
	require.NotNil(t, again.F1LockedAt)
	assert.True(t, first.Equal(*again.F1LockedAt), "exit time is never overwritten")
}

func TestItemService_MoveStage_WritesStatusAudit(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()
	it := createItem(t, f)

	_, err := f.svc.MoveStage(ctx, it.ID, domain.StageDiscovery, "kari")
	require.NoError(t, err)

	entries, err := f.audits.ListByItem(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditStatusChange, entries[0].Action)
	assert.Equal(t, "kari", entries[0].UserID)
	assert.JSONEq(t, `{"status":"status1"}`, string(entries[0].OldValue))
	assert.JSONEq(t, `{"status":"status2"}`, string(entries[0].NewValue))
}

func TestItemService_MoveStage_DoneGuard(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()
	it := createItem(t, f, testutil.WithStage(domain.StageDevelopment), testutil.WithGoodEnough(true, false, false))

	_, err := f.svc.MoveStage(ctx, it.ID, domain.StageDone, testUser)
	assert.ErrorIs(t, err, domain.ErrDoneCriteriaUnmet)

	stored, err := f.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageDevelopment, stored.Status, "rejected move writes nothing")
	entries, err := f.audits.ListByItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestItemService_MoveStage_DoneWithStopReason(t *testing.T) {
	f := setupItemService(t)
	it := createItem(t, f, testutil.WithStage(domain.StageDevelopment), testutil.WithStopReason("Vendor solved it"))

	moved, err := f.svc.MoveStage(context.Background(), it.ID, domain.StageDone, testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.StageDone, moved.Status)
}

func TestItemService_MoveStage_NotFoundAndInvalid(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()

	_, err := f.svc.MoveStage(ctx, "missing", domain.StageDiscovery, testUser)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	it := createItem(t, f)
	_, err = f.svc.MoveStage(ctx, it.ID, domain.Stage("status7"), testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
}

func TestItemService_Update_AuditsFullSnapshots(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()
	it := createItem(t, f, testutil.WithTags("ai"))

	updated, err := f.svc.Update(ctx, it.ID, domain.ItemPatch{
		Title:   domain.StrPtr("Smarter routing"),
		KPIName: domain.StrPtr("Time to assign"),
		PIIFlag: domain.BoolPtr(true),
	}, testUser)
	require.NoError(t, err)
	assert.Equal(t, "Smarter routing", updated.Title)

	entries, err := f.audits.ListByItem(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditItemUpdate, entries[0].Action)

	var oldSnap, newSnap map[string]any
	require.NoError(t, json.Unmarshal(entries[0].OldValue, &oldSnap))
	require.NoError(t, json.Unmarshal(entries[0].NewValue, &newSnap))
	assert.Equal(t, "Smarter triage", oldSnap["title"])
	assert.Nil(t, oldSnap["kpi_name"])
	assert.Equal(t, "Smarter routing", newSnap["title"])
	assert.Equal(t, "Time to assign", newSnap["kpi_name"])
	assert.Equal(t, true, newSnap["pii_flag"])
	assert.Equal(t, []any{"ai"}, newSnap["tags"])
}

func TestItemService_Update_DoneGuardUsesMergedRecord(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()
	it := createItem(t, f, testutil.WithStage(domain.StageDevelopment))

	done := domain.StageDone
	_, err := f.svc.Update(ctx, it.ID, domain.ItemPatch{Status: &done, GoodEnoughDemo: domain.BoolPtr(true)}, testUser)
	assert.ErrorIs(t, err, domain.ErrDoneCriteriaUnmet)

	updated, err := f.svc.Update(ctx, it.ID, domain.ItemPatch{
		Status:         &done,
		GoodEnoughDemo: domain.BoolPtr(true),
		GoodEnoughLog:  domain.BoolPtr(true),
	}, testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.StageDone, updated.Status)
}

func TestItemService_Update_Validation(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()
	it := createItem(t, f)

	_, err := f.svc.Update(ctx, it.ID, domain.ItemPatch{Title: domain.StrPtr(" ")}, testUser)
	assert.ErrorIs(t, err, ErrTitleRequired)

	bad := domain.RYG("purple")
	_, err = f.svc.Update(ctx, it.ID, domain.ItemPatch{RYGStatus: &bad}, testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidRYG)

	_, err = f.svc.Update(ctx, "missing", domain.ItemPatch{Title: domain.StrPtr("x")}, testUser)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	entries, err := f.audits.ListByItem(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, entries, "no audit entry without an existing record")
}

func TestItemService_Update_AuditFailureKeepsChange(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	items := repository.NewSQLiteItemRepo(db)
	boom := errors.New("disk full")
	audits := repository.NewSQLiteAuditLogRepo(testutil.FailOnMatchDB(db, "INSERT INTO audit_logs", boom))
	svc := NewItemService(items, audits)

	it := testutil.NewTestItem("Original", testutil.WithProblem("p"))
	require.NoError(t, items.Create(ctx, it))

	updated, err := svc.Update(ctx, it.ID, domain.ItemPatch{Title: domain.StrPtr("Changed")}, testUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuditNotRecorded)
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, updated, "the committed record is still returned")
	assert.Equal(t, "Changed", updated.Title)

	stored, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", stored.Title, "no compensating rollback")

	entries, err := repository.NewSQLiteAuditLogRepo(db).ListByItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestItemService_Delete(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()
	it := createItem(t, f)
	require.NoError(t, f.comments.Create(ctx, &domain.Comment{
		ID: "c1", ItemID: it.ID, UserID: testUser, Content: "hi", CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, f.svc.Delete(ctx, it.ID, testUser))

	_, err := f.svc.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	comments, err := f.comments.ListByItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	entries, err := f.audits.ListByItem(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditItemDelete, entries[0].Action)
	assert.Nil(t, entries[0].OldValue)
	assert.Nil(t, entries[0].NewValue)

	assert.ErrorIs(t, f.svc.Delete(ctx, it.ID, testUser), repository.ErrNotFound)
}

func TestItemService_Delete_MissingItemStillAudited(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()

	err := f.svc.Delete(ctx, "ghost", testUser)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	entries, err := f.audits.ListByItem(ctx, "ghost")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditItemDelete, entries[0].Action)
	assert.Equal(t, testUser, entries[0].UserID)
}

func TestItemService_Delete_AuditFailureKeepsItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	items := repository.NewSQLiteItemRepo(db)
	svc := NewItemService(items, repository.NewSQLiteAuditLogRepo(testutil.FailOnNthExecDB(db, 1, errors.New("boom"))))

	it := testutil.NewTestItem("Keep", testutil.WithProblem("p"))
	require.NoError(t, items.Create(ctx, it))

	require.Error(t, svc.Delete(ctx, it.ID, testUser))
	_, err := items.GetByID(ctx, it.ID)
	assert.NoError(t, err)
}
