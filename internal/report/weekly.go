// Package report renders the weekly SITREP and the per-item summary texts.
// Every function is deterministic for a given now.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
)

// TopTagLimit is how many tags the weekly report lists.
const TopTagLimit = 3

// StageCounts tallies items per stage over the full item set.
func StageCounts(items []*domain.Item) map[domain.Stage]int {
	counts := make(map[domain.Stage]int, len(domain.Stages))
	for _, st := range domain.Stages {
		counts[st] = 0
	}
	for _, it := range items {
		counts[it.Status]++
	}
	return counts
}

// TopTags returns up to limit tags ordered by frequency. Equal counts keep
// the order in which the tags were first seen.
func TopTags(items []*domain.Item, limit int) []string {
	type tagCount struct {
		tag   string
		count int
	}
	var order []tagCount
	index := map[string]int{}
	for _, it := range items {
		for _, tag := range it.Tags {
			if i, ok := index[tag]; ok {
				order[i].count++
				continue
			}
			index[tag] = len(order)
			order = append(order, tagCount{tag: tag, count: 1})
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].count > order[j].count })

	if len(order) > limit {
		order = order[:limit]
	}
	out := make([]string, 0, len(order))
	for _, tc := range order {
		out = append(out, tc.tag)
	}
	return out
}

// CreatedIn returns the items created inside w.
func CreatedIn(items []*domain.Item, w kpi.Window) []*domain.Item {
	var out []*domain.Item
	for _, it := range items {
		if w.Contains(it.CreatedAt) {
			out = append(out, it)
		}
	}
	return out
}

// Weekly renders the SITREP for the ISO week containing now. Stage counts
// cover all items; top tags cover only items created inside the week.
func Weekly(items []*domain.Item, k kpi.WeeklyKPIs, now time.Time, l *Labels) string {
	counts := StageCounts(items)

	tags := strings.Join(TopTags(CreatedIn(items, kpi.ISOWeekWindow(now)), TopTagLimit), ", ")
	if tags == "" {
		tags = l.NoTags
	}

	lines := []string{
		fmt.Sprintf(l.WeeklyHeader, now.Year(), kpi.ISOWeek(now)),
		"",
		fmt.Sprintf(l.VolumeLine, k.F1Volume),
		fmt.Sprintf(l.ConversionLine, k.F1ToF2Conversion, strings.ToUpper(string(k.RYGStatus))),
		fmt.Sprintf(l.LeadTimeLine, k.F1ToF2LeadTimeMedian),
		"",
		fmt.Sprintf(l.ActiveLine, counts[domain.StageDiscovery], counts[domain.StageDevelopment]),
		fmt.Sprintf(l.DoneLine, counts[domain.StageDone]),
		"",
		fmt.Sprintf(l.TopTagsLine, tags),
		"",
		l.NextWeek,
	}
	return strings.Join(lines, "\n")
}
