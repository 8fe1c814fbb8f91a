package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/cocoon/internal/app"
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/alexanderramin/cocoon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogUseCaseObserver_LogsSuccessAndFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewLogUseCaseObserver(zap.New(core))

	db := testutil.NewTestDB(t)
	svc := NewItemService(repository.NewSQLiteItemRepo(db), repository.NewSQLiteAuditLogRepo(db), obs)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.Item{Title: "t", Problem: domain.StrPtr("p")}, testUser))
	require.Error(t, svc.Create(ctx, &domain.Item{Title: ""}, testUser))

	entries := logs.FilterMessage("service_use_case").All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "item-create", fields["use_case"])
	assert.Equal(t, true, fields["success"])
	assert.NotEmpty(t, fields["item_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, false, entries[1].ContextMap()["success"])
	assert.Equal(t, ErrTitleRequired.Error(), entries[1].ContextMap()["error"])
}

func TestNewLogUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestReportService_ObservesBothUseCases(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	db := testutil.NewTestDB(t)
	items := repository.NewSQLiteItemRepo(db)
	svc := NewReportService(items, NewLogUseCaseObserver(zap.New(core)))
	ctx := context.Background()

	it := testutil.NewTestItem("Kart")
	require.NoError(t, items.Create(ctx, it))

	_, err := svc.Weekly(ctx, app.WeeklyReportRequest{})
	require.NoError(t, err)
	_, err = svc.ItemReport(ctx, app.ItemReportRequest{ItemID: it.ID, Locale: "en"})
	require.NoError(t, err)
	_, err = svc.ItemReport(ctx, app.ItemReportRequest{ItemID: "missing"})
	require.ErrorIs(t, err, repository.ErrNotFound)

	entries := logs.FilterMessage("service_use_case").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "weekly-report", entries[0].ContextMap()["use_case"])

	ok := entries[1].ContextMap()
	assert.Equal(t, "item-report", ok["use_case"])
	assert.Equal(t, it.ID, ok["item_id"])
	assert.Equal(t, true, ok["success"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "item-report", entries[2].ContextMap()["use_case"])
	assert.Equal(t, false, entries[2].ContextMap()["success"])
}
