package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/cocoon/internal/app"
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/alexanderramin/cocoon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Weekly(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	items := repository.NewSQLiteItemRepo(db)
	svc := NewReportService(items)

	now := time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	tuesday := monday.Add(24 * time.Hour)
	old := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	fixtures := []*domain.Item{
		testutil.NewTestItem("a", testutil.WithCreatedAt(monday), testutil.WithTags("ai")),
		testutil.NewTestItem("b", testutil.WithCreatedAt(monday), testutil.WithF1LockedAt(tuesday), testutil.WithTags("ai", "ops")),
		testutil.NewTestItem("c", testutil.WithCreatedAt(old), testutil.WithStage(domain.StageDiscovery),
			testutil.WithF1LockedAt(old.Add(72*time.Hour))),
		testutil.NewTestItem("d", testutil.WithCreatedAt(old), testutil.WithStage(domain.StageDone),
			testutil.WithGoodEnough(true, true, false)),
	}
	for _, it := range fixtures {
		require.NoError(t, items.Create(ctx, it))
	}

	resp, err := svc.Weekly(ctx, app.WeeklyReportRequest{Now: &now, Locale: "en"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.KPIs.F1Volume)
	assert.Equal(t, 50, resp.KPIs.F1ToF2Conversion)
	assert.Equal(t, domain.RYGYellow, resp.KPIs.RYGStatus)
	assert.Equal(t, 3, resp.KPIs.F1ToF2LeadTimeMedian)
	assert.Equal(t, []string{"ai", "ops"}, resp.TopTags)
	assert.Equal(t, 1, resp.StageCounts[domain.StageDone])
	assert.True(t, strings.HasPrefix(resp.Text, "SITREP WEEK 2025-W25\n"), resp.Text)
	assert.Contains(t, resp.Text, "Top Tags: ai, ops")
}

func TestReportService_WeeklyEmptyDefaultsToNorwegian(t *testing.T) {
	svc := NewReportService(repository.NewSQLiteItemRepo(testutil.NewTestDB(t)))
	now := time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)

	resp, err := svc.Weekly(context.Background(), app.WeeklyReportRequest{Now: &now})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.KPIs.F1Volume)
	assert.Equal(t, domain.RYGRed, resp.KPIs.RYGStatus)
	assert.Contains(t, resp.Text, "SITREP UKE 2025-W25")
	assert.Contains(t, resp.Text, "Top Tags: ingen")
}

func TestReportService_ItemReport(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	items := repository.NewSQLiteItemRepo(db)
	svc := NewReportService(items)

	it := testutil.NewTestItem("Bedre søk", testutil.WithProblem("Slow search"))
	require.NoError(t, items.Create(ctx, it))

	now := time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)
	resp, err := svc.ItemReport(ctx, app.ItemReportRequest{ItemID: it.ID, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, "bedre_s_k_f3.md", resp.Filename)
	assert.True(t, strings.HasPrefix(resp.Summary, "Bedre søk\n"))
	assert.True(t, strings.HasPrefix(resp.OnePager, "# Bedre søk\n"))
	assert.True(t, strings.HasSuffix(resp.OnePager, "Generert: 18. juni 2025"))

	_, err = svc.ItemReport(ctx, app.ItemReportRequest{ItemID: "missing"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
