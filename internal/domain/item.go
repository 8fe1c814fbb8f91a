package domain

import "time"

// Item is a pipeline work item moving through the four fixed stages.
type Item struct {
	ID      string
	Title   string
	Status  Stage
	OwnerID string

	CreatedAt time.Time
	// F1LockedAt marks the first transition out of the New stage.
	F1LockedAt *time.Time

	Problem            *string
	UserContext        *string
	MinSolution        *string
	CurrentSolution    *string
	ResourceAssessment *string

	// KPI descriptor
	KPIName         *string
	KPIBaseline     *string
	KPITarget       *string
	FirstMeasureDue *time.Time

	RiskNote    *string
	PIIFlag     bool
	RBACNote    *string
	ArtefactURL *string

	TimeboxFrom *time.Time
	TimeboxTo   *time.Time

	GoodEnoughDemo    bool
	GoodEnoughMeasure bool
	GoodEnoughLog     bool
	StopReason        *string
	RYGStatus         *RYG

	Tags []string
}

// GoodEnoughCount returns how many of the three completion flags are set.
func (it *Item) GoodEnoughCount() int {
	n := 0
	for _, f := range []bool{it.GoodEnoughDemo, it.GoodEnoughMeasure, it.GoodEnoughLog} {
		if f {
			n++
		}
	}
	return n
}

// HasStopReason reports whether a non-empty stop reason is recorded.
func (it *Item) HasStopReason() bool {
	return it.StopReason != nil && *it.StopReason != ""
}

// CanMarkDone enforces the terminal-stage rule.
func (it *Item) CanMarkDone() error {
	if it.GoodEnoughCount() < 2 && !it.HasStopReason() {
		return ErrDoneCriteriaUnmet
	}
	return nil
}

// StageChange computes the fields written when the item moves to stage.
// Leaving New for Discovery stamps F1LockedAt once; an existing stamp is kept.
func (it *Item) StageChange(stage Stage, now time.Time) (ItemPatch, error) {
	if !stage.Valid() {
		return ItemPatch{}, ErrInvalidStage
	}
	if stage == StageDone {
		if err := it.CanMarkDone(); err != nil {
			return ItemPatch{}, err
		}
	}
	p := ItemPatch{Status: &stage}
	if stage == StageDiscovery && it.F1LockedAt == nil {
		p.F1LockedAt = SetTime(now)
	}
	return p, nil
}

// HasTag reports whether tag is in the item's tag set.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so snapshots are not aliased by later patches.
func (it *Item) Clone() *Item {
	c := *it
	c.Tags = append([]string(nil), it.Tags...)
	return &c
}
