// Package kpi computes the weekly pipeline metrics: new-item volume, the
// share of this week's new items that left stage 1 within the week, the
// stage-1 lead time, and the red/yellow/green classification.
package kpi

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
)

// Thresholds on the conversion percentage. Values strictly above green are
// green; values from yellow up to and including green are yellow.
const (
	GreenAbove      = 70.0
	YellowAtOrAbove = 40.0
)

// WeeklyKPIs is the result of Calculate.
type WeeklyKPIs struct {
	Week Window

	F1Volume int
	// F1ToF2Conversion is rounded to the nearest whole percent.
	F1ToF2Conversion int
	// F1ToF2LeadTimeMedian is in whole days.
	F1ToF2LeadTimeMedian int
	RYGStatus            domain.RYG
}

// Calculate derives the weekly KPIs from items for the ISO week containing
// now. It reads nothing but its arguments.
func Calculate(items []*domain.Item, now time.Time) WeeklyKPIs {
	week := ISOWeekWindow(now)

	var volume, converted int
	for _, it := range items {
		if it.Status != domain.StageNew || !week.Contains(it.CreatedAt) {
			continue
		}
		volume++
		if it.F1LockedAt != nil && week.Contains(*it.F1LockedAt) {
			converted++
		}
	}

	var conversion float64
	if volume > 0 {
		conversion = float64(converted) / float64(volume) * 100
	}

	return WeeklyKPIs{
		Week:                 week,
		F1Volume:             volume,
		F1ToF2Conversion:     roundHalfUp(conversion),
		F1ToF2LeadTimeMedian: LowerMedian(LeadTimes(items, now.Location())),
		RYGStatus:            ClassifyRYG(conversion),
	}
}

// LeadTimes returns, ascending, the whole days between creation and the
// stage-1 exit for every item that has left stage 1. Days are counted on the
// calendar of loc, whatever zone the stored timestamps carry.
func LeadTimes(items []*domain.Item, loc *time.Location) []int {
	var days []int
	for _, it := range items {
		if it.F1LockedAt == nil || it.Status == domain.StageNew {
			continue
		}
		days = append(days, WholeDaysBetween(it.F1LockedAt.In(loc), it.CreatedAt.In(loc)))
	}
	sort.Ints(days)
	return days
}

// LowerMedian returns sorted[len/2], or 0 for an empty slice. An even count
// yields the element at index len/2, not the mean of the two middle values.
func LowerMedian(sorted []int) int {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)/2]
}

// ClassifyRYG maps a conversion percentage to a traffic light.
func ClassifyRYG(conversion float64) domain.RYG {
	switch {
	case conversion > GreenAbove:
		return domain.RYGGreen
	case conversion >= YellowAtOrAbove:
		return domain.RYGYellow
	default:
		return domain.RYGRed
	}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
