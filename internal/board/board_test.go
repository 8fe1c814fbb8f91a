package board

import (
	"testing"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow  = time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)
	thisWeek = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	lastWeek = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
)

func ids(items []*domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func ryg(r domain.RYG) *domain.RYG { return &r }

func sampleItems() []*domain.Item {
	return []*domain.Item{
		{ID: "new-now", Title: "Chatbot", Status: domain.StageNew, OwnerID: "ada", CreatedAt: thisWeek, Tags: []string{"ai"}},
		{ID: "new-old", Title: "Dashboards", Status: domain.StageNew, OwnerID: "bo", CreatedAt: lastWeek, Tags: []string{"data", "ai"}},
		{ID: "disc-old", Title: "Search", Status: domain.StageDiscovery, OwnerID: "ada", CreatedAt: lastWeek,
			Problem: domain.StrPtr("Users cannot FIND invoices"), RYGStatus: ryg(domain.RYGGreen), GoodEnoughDemo: true},
		{ID: "dev", Title: "Billing", Status: domain.StageDevelopment, OwnerID: "cy", CreatedAt: lastWeek,
			RYGStatus: ryg(domain.RYGRed), GoodEnoughDemo: true, GoodEnoughLog: true},
	}
}

func TestApply_ThisWeekOnlyAffectsOnlyNewItems(t *testing.T) {
	got := Apply(sampleItems(), Filter{ThisWeekOnly: true}, testNow)
	assert.Equal(t, []string{"new-now", "disc-old", "dev"}, ids(got))
}

func TestApply_ZeroFilterKeepsEverything(t *testing.T) {
	items := sampleItems()
	assert.Len(t, Apply(items, Filter{}, testNow), len(items))
}

func TestApply_Criteria(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"owner", Filter{Owner: "ada"}, []string{"new-now", "disc-old"}},
		{"ryg", Filter{RYG: domain.RYGRed}, []string{"dev"}},
		{"tag", Filter{Tag: "ai"}, []string{"new-now", "new-old"}},
		{"demo true", Filter{HasDemo: domain.BoolPtr(true)}, []string{"disc-old", "dev"}},
		{"demo false", Filter{HasDemo: domain.BoolPtr(false)}, []string{"new-now", "new-old"}},
		{"log true", Filter{HasLog: domain.BoolPtr(true)}, []string{"dev"}},
		{"measure true", Filter{HasMeasure: domain.BoolPtr(true)}, []string{}},
		{"search title", Filter{Search: "chat"}, []string{"new-now"}},
		{"search problem", Filter{Search: "invoices"}, []string{"disc-old"}},
		{"search case", Filter{Search: "BILLING"}, []string{"dev"}},
		{"combined", Filter{Owner: "ada", Tag: "ai", ThisWeekOnly: true}, []string{"new-now"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Apply(sampleItems(), tc.filter, testNow)))
		})
	}
}

func TestSortColumn_TimeboxFirstThenCreated(t *testing.T) {
	box := func(d int) *time.Time {
		v := time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	items := []*domain.Item{
		{ID: "late-created", CreatedAt: thisWeek},
		{ID: "box-20", CreatedAt: thisWeek, TimeboxTo: box(20)},
		{ID: "early-created", CreatedAt: lastWeek},
		{ID: "box-5", CreatedAt: thisWeek, TimeboxTo: box(5)},
	}
	got := SortColumn(items)
	assert.Equal(t, []string{"box-5", "box-20", "early-created", "late-created"}, ids(got))
	assert.Equal(t, "late-created", items[0].ID, "input is left untouched")
}

func TestColumns_GroupsByStage(t *testing.T) {
	cols := Columns(sampleItems(), Filter{}, testNow)
	require.Len(t, cols, 4)
	assert.Equal(t, domain.StageNew, cols[0].Stage)
	assert.Equal(t, []string{"new-old", "new-now"}, ids(cols[0].Items))
	assert.Equal(t, []string{"disc-old"}, ids(cols[1].Items))
	assert.Equal(t, []string{"dev"}, ids(cols[2].Items))
	assert.Empty(t, cols[3].Items)
}

func TestAvailableOwnersAndTags(t *testing.T) {
	items := sampleItems()
	assert.Equal(t, []string{"ada", "bo", "cy"}, AvailableOwners(items))
	assert.Equal(t, []string{"ai", "data"}, AvailableTags(items))
	assert.Empty(t, AvailableOwners(nil))
}
