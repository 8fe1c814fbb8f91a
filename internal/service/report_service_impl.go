package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cocoon/internal/app"
	"github.com/alexanderramin/cocoon/internal/kpi"
	"github.com/alexanderramin/cocoon/internal/report"
	"github.com/alexanderramin/cocoon/internal/repository"
)

type reportService struct {
	items    repository.ItemRepo
	observer UseCaseObserver
}

func NewReportService(items repository.ItemRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{items: items, observer: useCaseObserverOrNoop(observers)}
}

// Weekly computes the KPIs from a fresh read of every item and renders the
// SITREP.
func (s *reportService) Weekly(ctx context.Context, req app.WeeklyReportRequest) (resp *app.WeeklyReportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"locale": req.Locale}
	defer observe(ctx, s.observer, "weekly-report", startedAt, fields, &err)

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	items, err := s.items.List(ctx, repository.ItemQuery{})
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	fields["item_count"] = len(items)

	k := kpi.Calculate(items, now)
	labels := report.LabelsFor(req.Locale)
	return &app.WeeklyReportResponse{
		GeneratedAt: now,
		KPIs:        k,
		StageCounts: report.StageCounts(items),
		TopTags:     report.TopTags(report.CreatedIn(items, k.Week), report.TopTagLimit),
		Text:        report.Weekly(items, k, now, labels),
	}, nil
}

func (s *reportService) ItemReport(ctx context.Context, req app.ItemReportRequest) (resp *app.ItemReportResponse, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "item-report", startedAt, map[string]any{"item_id": req.ItemID, "locale": req.Locale}, &err)

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	labels := report.LabelsFor(req.Locale)
	return &app.ItemReportResponse{
		Item:     it,
		Summary:  report.ItemSummary(it, labels),
		OnePager: report.OnePager(it, now, labels),
		Filename: report.OnePagerFilename(it.Title),
	}, nil
}
