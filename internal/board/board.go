// Package board filters pipeline items and lays them out as one column per
// stage.
package board

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
)

// Filter narrows the board. Zero values mean "all": an empty Owner, RYG or
// Tag, a nil good-enough flag, an empty Search.
type Filter struct {
	// ThisWeekOnly hides New items created outside the current ISO week.
	// Items in later stages are never hidden by it.
	ThisWeekOnly bool

	Owner string
	RYG   domain.RYG
	Tag   string

	HasDemo    *bool
	HasMeasure *bool
	HasLog     *bool

	// Search matches title or problem, case-insensitively.
	Search string
}

// Matches reports whether it passes every criterion of f. week is the ISO
// week used by ThisWeekOnly.
func (f Filter) Matches(it *domain.Item, week kpi.Window) bool {
	if f.ThisWeekOnly && it.Status == domain.StageNew && !week.Contains(it.CreatedAt) {
		return false
	}
	if f.Owner != "" && it.OwnerID != f.Owner {
		return false
	}
	if f.RYG != "" && (it.RYGStatus == nil || *it.RYGStatus != f.RYG) {
		return false
	}
	if f.Tag != "" && !it.HasTag(f.Tag) {
		return false
	}
	if !flagMatches(f.HasDemo, it.GoodEnoughDemo) ||
		!flagMatches(f.HasMeasure, it.GoodEnoughMeasure) ||
		!flagMatches(f.HasLog, it.GoodEnoughLog) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		inTitle := strings.Contains(strings.ToLower(it.Title), q)
		inProblem := it.Problem != nil && strings.Contains(strings.ToLower(*it.Problem), q)
		if !inTitle && !inProblem {
			return false
		}
	}
	return true
}

func flagMatches(want *bool, got bool) bool {
	return want == nil || *want == got
}

// Apply returns the items passing f, in input order.
func Apply(items []*domain.Item, f Filter, now time.Time) []*domain.Item {
	week := kpi.ISOWeekWindow(now)
	out := make([]*domain.Item, 0, len(items))
	for _, it := range items {
		if f.Matches(it, week) {
			out = append(out, it)
		}
	}
	return out
}

// SortColumn orders items for display: those with a time-box end first,
// earliest end first, then the rest by creation time ascending. The input
// slice is not modified.
func SortColumn(items []*domain.Item) []*domain.Item {
	out := append([]*domain.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.TimeboxTo != nil && b.TimeboxTo != nil:
			return a.TimeboxTo.Before(*b.TimeboxTo)
		case a.TimeboxTo != nil:
			return true
		case b.TimeboxTo != nil:
			return false
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out
}

// Column is one stage of the board.
type Column struct {
	Stage domain.Stage
	Items []*domain.Item
}

// Columns filters items and groups them into the four stage columns, each
// sorted with SortColumn.
func Columns(items []*domain.Item, f Filter, now time.Time) []Column {
	filtered := Apply(items, f, now)
	cols := make([]Column, 0, len(domain.Stages))
	for _, st := range domain.Stages {
		var in []*domain.Item
		for _, it := range filtered {
			if it.Status == st {
				in = append(in, it)
			}
		}
		cols = append(cols, Column{Stage: st, Items: SortColumn(in)})
	}
	return cols
}

// AvailableOwners lists distinct owner ids in first-seen order.
func AvailableOwners(items []*domain.Item) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		if !seen[it.OwnerID] {
			seen[it.OwnerID] = true
			out = append(out, it.OwnerID)
		}
	}
	return out
}

// AvailableTags lists distinct tags in first-seen order.
func AvailableTags(items []*domain.Item) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		for _, tag := range it.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}
