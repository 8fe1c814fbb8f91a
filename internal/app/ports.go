package app

import "context"

// WeeklyReportUseCase computes the KPIs and SITREP for the week containing
// the request's now.
type WeeklyReportUseCase interface {
	Weekly(ctx context.Context, req WeeklyReportRequest) (*WeeklyReportResponse, error)
}

type ItemReportUseCase interface {
	ItemReport(ctx context.Context, req ItemReportRequest) (*ItemReportResponse, error)
}

// OrgChartUseCase returns the derived forest and roster.
type OrgChartUseCase interface {
	View(ctx context.Context) (*OrgChartView, error)
}
