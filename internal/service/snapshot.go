package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
)

// itemSnapshot is the JSON shape stored in audit old/new values. Keys follow
// the items table columns.
type itemSnapshot struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Status             string     `json:"status"`
	OwnerID            string     `json:"owner_id"`
	CreatedAt          time.Time  `json:"created_at"`
	F1LockedAt         *time.Time `json:"f1_locked_at"`
	Problem            *string    `json:"problem"`
	UserContext        *string    `json:"user_ctx"`
	MinSolution        *string    `json:"min_solution"`
	CurrentSolution    *string    `json:"current_solution"`
	ResourceAssessment *string    `json:"resource_assessment"`
	KPIName            *string    `json:"kpi_name"`
	KPIBaseline        *string    `json:"kpi_baseline"`
	KPITarget          *string    `json:"kpi_target"`
	FirstMeasureDue    *time.Time `json:"first_measure_due"`
	RiskNote           *string    `json:"risk_note"`
	PIIFlag            bool       `json:"pii_flag"`
	RBACNote           *string    `json:"rbac_note"`
	ArtefactURL        *string    `json:"artefact_url"`
	TimeboxFrom        *time.Time `json:"timebox_from"`
	TimeboxTo          *time.Time `json:"timebox_to"`
	GoodEnoughDemo     bool       `json:"good_enough_demo"`
	GoodEnoughMeasure  bool       `json:"good_enough_measure"`
	GoodEnoughLog      bool       `json:"good_enough_log"`
	StopReason         *string    `json:"stopp_reason"`
	RYGStatus          *string    `json:"ryg_status"`
	Tags               []string   `json:"tags"`
}

func snapshotItem(it *domain.Item) ([]byte, error) {
	s := itemSnapshot{
		ID:                 it.ID,
		Title:              it.Title,
		Status:             string(it.Status),
		OwnerID:            it.OwnerID,
		CreatedAt:          it.CreatedAt,
		F1LockedAt:         it.F1LockedAt,
		Problem:            it.Problem,
		UserContext:        it.UserContext,
		MinSolution:        it.MinSolution,
		CurrentSolution:    it.CurrentSolution,
		ResourceAssessment: it.ResourceAssessment,
		KPIName:            it.KPIName,
		KPIBaseline:        it.KPIBaseline,
		KPITarget:          it.KPITarget,
		FirstMeasureDue:    it.FirstMeasureDue,
		RiskNote:           it.RiskNote,
		PIIFlag:            it.PIIFlag,
		RBACNote:           it.RBACNote,
		ArtefactURL:        it.ArtefactURL,
		TimeboxFrom:        it.TimeboxFrom,
		TimeboxTo:          it.TimeboxTo,
		GoodEnoughDemo:     it.GoodEnoughDemo,
		GoodEnoughMeasure:  it.GoodEnoughMeasure,
		GoodEnoughLog:      it.GoodEnoughLog,
		StopReason:         it.StopReason,
		Tags:               it.Tags,
	}
	if it.RYGStatus != nil {
		r := string(*it.RYGStatus)
		s.RYGStatus = &r
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding item snapshot: %w", err)
	}
	return b, nil
}

func snapshotStatus(stage domain.Stage) ([]byte, error) {
	b, err := json.Marshal(map[string]string{"status": string(stage)})
	if err != nil {
		return nil, fmt.Errorf("encoding status snapshot: %w", err)
	}
	return b, nil
}
