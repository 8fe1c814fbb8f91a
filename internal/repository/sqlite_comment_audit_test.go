package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepo_ListOldestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	it := testutil.NewTestItem("Commented")
	require.NoError(t, NewSQLiteItemRepo(database).Create(ctx, it))
	repo := NewSQLiteCommentRepo(database)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &domain.Comment{ID: "c2", ItemID: it.ID, UserID: "u", Content: "second", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &domain.Comment{ID: "c1", ItemID: it.ID, UserID: "u", Content: "first", CreatedAt: base}))

	got, err := repo.ListByItem(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.True(t, base.Equal(got[0].CreatedAt))
}

func TestCommentRepo_RequiresExistingItem(t *testing.T) {
	repo := NewSQLiteCommentRepo(testutil.NewTestDB(t))
	err := repo.Create(context.Background(), &domain.Comment{
		ID: "c1", ItemID: "ghost", UserID: "u", Content: "x", CreatedAt: time.Now().UTC(),
	})
	assert.Error(t, err)
}

func TestAuditLogRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLiteAuditLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &domain.AuditLogEntry{
		ID: "a1", ItemID: "i1", UserID: "u", Action: domain.AuditItemUpdate,
		NewValue: []byte(`{"title":"x"}`), CreatedAt: base,
	}))
	require.NoError(t, repo.Create(ctx, &domain.AuditLogEntry{
		ID: "a2", ItemID: "i1", UserID: "u", Action: domain.AuditStatusChange,
		OldValue: []byte(`{"status":"status1"}`), NewValue: []byte(`{"status":"status2"}`), CreatedAt: base.Add(time.Second),
	}))
	require.NoError(t, repo.Create(ctx, &domain.AuditLogEntry{
		ID: "other", ItemID: "i2", UserID: "u", Action: domain.AuditItemDelete, CreatedAt: base,
	}))

	got, err := repo.ListByItem(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.AuditStatusChange, got[0].Action)
	assert.Equal(t, domain.AuditItemUpdate, got[1].Action)
	assert.Nil(t, got[1].OldValue)
	assert.JSONEq(t, `{"status":"status2"}`, string(got[0].NewValue))
}
