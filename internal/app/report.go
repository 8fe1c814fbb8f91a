package app

import (
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
)

type WeeklyReportRequest struct {
	// Now overrides the clock; nil means the current time.
	Now *time.Time
	// Locale selects the report language ("nb", "en"). Empty means "nb".
	Locale string
}

type WeeklyReportResponse struct {
	GeneratedAt time.Time
	KPIs        kpi.WeeklyKPIs
	StageCounts map[domain.Stage]int
	TopTags     []string
	Text        string
}

type ItemReportRequest struct {
	ItemID string
	Now    *time.Time
	Locale string
}

type ItemReportResponse struct {
	Item *domain.Item
	// Summary is the plain-text item SITREP.
	Summary string
	// OnePager is the markdown document and Filename its suggested name.
	OnePager string
	Filename string
}
