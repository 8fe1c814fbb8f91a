package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ReadDuringWrite checks that listing items while
// another goroutine inserts neither blocks nor returns half-written rows.
// WAL mode allows concurrent readers alongside the single writer.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteItemRepo(database)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			it := testutil.NewTestItem(fmt.Sprintf("Item-%d", i), testutil.WithTags("load"))
			if err := repo.Create(ctx, it); err != nil {
				t.Errorf("writer: create item %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				items, err := repo.List(ctx, ItemQuery{})
				if err != nil {
					t.Errorf("reader %d: list items: %v", reader, err)
					return
				}
				for _, it := range items {
					if it.ID == "" || it.Title == "" || len(it.Tags) != 1 {
						t.Errorf("reader %d: partial item %+v", reader, it)
						return
					}
				}
			}
		}(r)
	}
	wg.Wait()

	items, err := repo.List(ctx, ItemQuery{})
	require.NoError(t, err)
	assert.Len(t, items, 20)
}

// TestConcurrentAccess_ParallelStageUpdates moves distinct items from many
// goroutines at once; every update must land.
func TestConcurrentAccess_ParallelStageUpdates(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteItemRepo(database)

	const n = 10
	ids := make([]string, n)
	for i := range ids {
		it := testutil.NewTestItem(fmt.Sprintf("Item-%d", i))
		require.NoError(t, repo.Create(ctx, it))
		ids[i] = it.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			stage := domain.StageDiscovery
			if _, err := repo.Update(ctx, id, domain.ItemPatch{Status: &stage}); err != nil {
				t.Errorf("update %s: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	moved, err := repo.List(ctx, ItemQuery{Stage: domain.StageDiscovery})
	require.NoError(t, err)
	assert.Len(t, moved, n)
}
