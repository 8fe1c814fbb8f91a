package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cocoon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleNodeRepo_InsertionOrderAndOrphans(t *testing.T) {
	repo := NewSQLiteRoleNodeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestNode("z-root", "Root")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestNode("a-child", "Child", testutil.WithParentID("z-root"), testutil.WithLevel(1))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestNode("orphan", "Orphan", testutil.WithParentID("ghost"))))

	nodes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "z-root", nodes[0].ID)
	assert.Nil(t, nodes[0].ParentID)
	assert.Equal(t, 1, nodes[1].Level)
	require.NotNil(t, nodes[2].ParentID)
	assert.Equal(t, "ghost", *nodes[2].ParentID)

	require.NoError(t, repo.DeleteAll(ctx))
	nodes, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestTeamMemberRepo_UpsertKeepsCreatedAt(t *testing.T) {
	repo := NewSQLiteTeamMemberRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMember("m1", "Ada", "go", "sql")
	require.NoError(t, repo.Upsert(ctx, m))

	updated := testutil.NewTestMember("m1", "Ada Lovelace")
	updated.CreatedAt = m.CreatedAt.Add(time.Hour)
	require.NoError(t, repo.Upsert(ctx, updated))

	members, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ada Lovelace", members[0].Name)
	assert.Empty(t, members[0].Skills)
	assert.True(t, m.CreatedAt.Equal(members[0].CreatedAt))
}

func TestAssignmentRepo_UniquePairAndDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	nodes := NewSQLiteRoleNodeRepo(database)
	members := NewSQLiteTeamMemberRepo(database)
	repo := NewSQLiteAssignmentRepo(database)

	require.NoError(t, nodes.Create(ctx, testutil.NewTestNode("n1", "Lead")))
	require.NoError(t, members.Upsert(ctx, testutil.NewTestMember("m1", "Ada")))
	require.NoError(t, members.Upsert(ctx, testutil.NewTestMember("m2", "Bo")))

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment("n1", "m1")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment("n1", "m2")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestAssignment("n1", "m1")), "duplicate pair")
	assert.Error(t, repo.Create(ctx, testutil.NewTestAssignment("ghost", "m1")), "unknown node")

	n, err := repo.Delete(ctx, "n1", "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, "n1", "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "m2", list[0].MemberID)
}

func TestRoleNodeRepo_DeleteAllCascadesAssignments(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	nodes := NewSQLiteRoleNodeRepo(database)
	members := NewSQLiteTeamMemberRepo(database)
	assignments := NewSQLiteAssignmentRepo(database)

	require.NoError(t, nodes.Create(ctx, testutil.NewTestNode("n1", "Lead")))
	require.NoError(t, members.Upsert(ctx, testutil.NewTestMember("m1", "Ada")))
	require.NoError(t, assignments.Create(ctx, testutil.NewTestAssignment("n1", "m1")))

	require.NoError(t, nodes.DeleteAll(ctx))

	list, err := assignments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	ms, err := members.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ms, 1)
}
