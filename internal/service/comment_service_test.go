package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/alexanderramin/cocoon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	items := repository.NewSQLiteItemRepo(db)
	svc := NewCommentService(repository.NewSQLiteCommentRepo(db))

	it := testutil.NewTestItem("Commented")
	require.NoError(t, items.Create(ctx, it))

	c, err := svc.Add(ctx, it.ID, "kari", "  first thought  ")
	require.NoError(t, err)
	assert.Equal(t, "first thought", c.Content)
	assert.NotEmpty(t, c.ID)

	_, err = svc.Add(ctx, it.ID, "kari", "second")
	require.NoError(t, err)

	list, err := svc.List(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first thought", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
}

func TestCommentService_RejectsBlank(t *testing.T) {
	svc := NewCommentService(repository.NewSQLiteCommentRepo(testutil.NewTestDB(t)))
	_, err := svc.Add(context.Background(), "any", "kari", " \n\t")
	assert.ErrorIs(t, err, ErrCommentEmpty)
}

func TestCommentService_UnknownItem(t *testing.T) {
	svc := NewCommentService(repository.NewSQLiteCommentRepo(testutil.NewTestDB(t)))
	_, err := svc.Add(context.Background(), "ghost", "kari", "hello")
	assert.Error(t, err)
}

func TestAuditService_ListNewestFirst(t *testing.T) {
	f := setupItemService(t)
	ctx := context.Background()
	it := createItem(t, f)

	_, err := f.svc.Update(ctx, it.ID, domain.ItemPatch{Title: domain.StrPtr("Renamed")}, testUser)
	require.NoError(t, err)
	_, err = f.svc.MoveStage(ctx, it.ID, domain.StageDiscovery, testUser)
	require.NoError(t, err)

	entries, err := NewAuditService(f.audits).List(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AuditStatusChange, entries[0].Action)
	assert.Equal(t, domain.AuditItemUpdate, entries[1].Action)
}
