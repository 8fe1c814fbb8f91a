package kpi

import (
	"math"
	"time"
)

const weekMillis = 604800000

// Window is an inclusive [Start, End] time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ISOWeekWindow returns the Monday 00:00 to Sunday 23:59:59.999999999 week
// containing now, in now's location.
func ISOWeekWindow(now time.Time) Window {
	y, m, d := now.Date()
	offset := (int(now.Weekday()) + 6) % 7
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
	end := time.Date(y, m, d-offset+7, 0, 0, 0, 0, now.Location()).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// ISOWeek returns the ISO-8601 week number of t using the Thursday rule:
// shift to the Thursday of t's week, then count weeks from the first
// Thursday of that Thursday's year. Wall-clock fields are preserved across
// the shifts and the week count is rounded up, so results follow t's
// location exactly as a local-calendar implementation would.
func ISOWeek(t time.Time) int {
	loc := t.Location()
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	ns := t.Nanosecond()

	dayNr := (int(t.Weekday()) + 6) % 7
	thursday := time.Date(y, m, d-dayNr+3, hh, mm, ss, ns, loc)

	first := time.Date(thursday.Year(), time.January, 1, hh, mm, ss, ns, loc)
	if first.Weekday() != time.Thursday {
		first = time.Date(thursday.Year(), time.January, 1+((4-int(first.Weekday())+7)%7), hh, mm, ss, ns, loc)
	}

	diff := float64(thursday.UnixMilli() - first.UnixMilli())
	return 1 + int(math.Ceil(diff/weekMillis))
}

// WholeDaysBetween returns the number of full calendar days from earlier to
// later, truncated toward zero. Days are counted on the local calendar of
// later, so a day across a DST change still counts as one day.
func WholeDaysBetween(later, earlier time.Time) int {
	earlier = earlier.In(later.Location())
	sign := compareLocal(later, earlier)
	if sign == 0 {
		return 0
	}
	diff := calendarDays(later, earlier)
	if diff < 0 {
		diff = -diff
	}
	y, m, d := later.Date()
	hh, mm, ss := later.Clock()
	shifted := time.Date(y, m, d-sign*diff, hh, mm, ss, later.Nanosecond(), later.Location())
	notFull := 0
	if compareLocal(shifted, earlier) == -sign {
		notFull = 1
	}
	return sign * (diff - notFull)
}

func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(math.Round(da.Sub(db).Hours() / 24))
}

// compareLocal orders two times by their wall-clock fields.
func compareLocal(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ah, ami, as := a.Clock()
	bh, bmi, bs := b.Clock()
	av := []int{ay, int(am), ad, ah, ami, as, a.Nanosecond()}
	bv := []int{by, int(bm), bd, bh, bmi, bs, b.Nanosecond()}
	for i := range av {
		switch {
		case av[i] < bv[i]:
			return -1
		case av[i] > bv[i]:
			return 1
		}
	}
	return 0
}
