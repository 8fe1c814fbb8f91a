package domain

import "time"

// TimeField is a patch slot for a nullable timestamp. Set marks the field as
// part of the patch; a set field with a nil Value clears the column.
type TimeField struct {
	Set   bool
	Value *time.Time
}

// SetTime returns a patch slot assigning t.
func SetTime(t time.Time) TimeField {
	return TimeField{Set: true, Value: &t}
}

// ClearTime returns a patch slot that nulls the column.
func ClearTime() TimeField {
	return TimeField{Set: true}
}

// ItemPatch is a partial item update. Nil pointers are left untouched. For
// nullable text fields an empty string clears the value.
type ItemPatch struct {
	Title   *string
	Status  *Stage
	OwnerID *string

	F1LockedAt TimeField

	Problem            *string
	UserContext        *string
	MinSolution        *string
	CurrentSolution    *string
	ResourceAssessment *string

	KPIName         *string
	KPIBaseline     *string
	KPITarget       *string
	FirstMeasureDue TimeField

	RiskNote    *string
	PIIFlag     *bool
	RBACNote    *string
	ArtefactURL *string

	TimeboxFrom TimeField
	TimeboxTo   TimeField

	GoodEnoughDemo    *bool
	GoodEnoughMeasure *bool
	GoodEnoughLog     *bool
	StopReason        *string
	// RYGStatus set to "" clears the traffic light.
	RYGStatus *RYG

	Tags *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Status == nil && p.OwnerID == nil &&
		!p.F1LockedAt.Set &&
		p.Problem == nil && p.UserContext == nil && p.MinSolution == nil &&
		p.CurrentSolution == nil && p.ResourceAssessment == nil &&
		p.KPIName == nil && p.KPIBaseline == nil && p.KPITarget == nil && !p.FirstMeasureDue.Set &&
		p.RiskNote == nil && p.PIIFlag == nil && p.RBACNote == nil && p.ArtefactURL == nil &&
		!p.TimeboxFrom.Set && !p.TimeboxTo.Set &&
		p.GoodEnoughDemo == nil && p.GoodEnoughMeasure == nil && p.GoodEnoughLog == nil &&
		p.StopReason == nil && p.RYGStatus == nil && p.Tags == nil
}

// Apply writes the patch onto it.
func (p ItemPatch) Apply(it *Item) {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	if p.OwnerID != nil {
		it.OwnerID = *p.OwnerID
	}
	applyTime(&it.F1LockedAt, p.F1LockedAt)

	applyText(&it.Problem, p.Problem)
	applyText(&it.UserContext, p.UserContext)
	applyText(&it.MinSolution, p.MinSolution)
	applyText(&it.CurrentSolution, p.CurrentSolution)
	applyText(&it.ResourceAssessment, p.ResourceAssessment)

	applyText(&it.KPIName, p.KPIName)
	applyText(&it.KPIBaseline, p.KPIBaseline)
	applyText(&it.KPITarget, p.KPITarget)
	applyTime(&it.FirstMeasureDue, p.FirstMeasureDue)

	applyText(&it.RiskNote, p.RiskNote)
	if p.PIIFlag != nil {
		it.PIIFlag = *p.PIIFlag
	}
	applyText(&it.RBACNote, p.RBACNote)
	applyText(&it.ArtefactURL, p.ArtefactURL)

	applyTime(&it.TimeboxFrom, p.TimeboxFrom)
	applyTime(&it.TimeboxTo, p.TimeboxTo)

	if p.GoodEnoughDemo != nil {
		it.GoodEnoughDemo = *p.GoodEnoughDemo
	}
	if p.GoodEnoughMeasure != nil {
		it.GoodEnoughMeasure = *p.GoodEnoughMeasure
	}
	if p.GoodEnoughLog != nil {
		it.GoodEnoughLog = *p.GoodEnoughLog
	}
	applyText(&it.StopReason, p.StopReason)
	if p.RYGStatus != nil {
		if *p.RYGStatus == "" {
			it.RYGStatus = nil
		} else {
			r := *p.RYGStatus
			it.RYGStatus = &r
		}
	}
	if p.Tags != nil {
		it.Tags = append([]string{}, (*p.Tags)...)
	}
}

func applyText(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	s := *v
	*dst = &s
}

func applyTime(dst **time.Time, f TimeField) {
	if !f.Set {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	t := *f.Value
	*dst = &t
}
