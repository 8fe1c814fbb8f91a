package domain

import (
	"fmt"
	"strings"
)

// Stage is the lifecycle stage of a pipeline item. The stored values are the
// positional codes used by the items table.
type Stage string

const (
	StageNew         Stage = "status1"
	StageDiscovery   Stage = "status2"
	StageDevelopment Stage = "status3"
	StageDone        Stage = "status4"
)

// Stages lists every stage in board order.
var Stages = []Stage{StageNew, StageDiscovery, StageDevelopment, StageDone}

var stageLabels = map[Stage]string{
	StageNew:         "New",
	StageDiscovery:   "Discovery",
	StageDevelopment: "Development",
	StageDone:        "Done",
}

// Label returns the board column name of the stage.
func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the four fixed stages.
func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

// Next returns the stage that follows s, or false when s is terminal.
func (s Stage) Next() (Stage, bool) {
	for i, st := range Stages {
		if st == s && i+1 < len(Stages) {
			return Stages[i+1], true
		}
	}
	return "", false
}

// ParseStage accepts either the stored code ("status2") or the column
// name ("discovery"), case-insensitively.
func ParseStage(v string) (Stage, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, st := range Stages {
		if v == string(st) || v == strings.ToLower(st.Label()) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected new|discovery|development|done)", ErrInvalidStage, v)
}

// RYG is the red/yellow/green traffic-light status.
type RYG string

const (
	RYGRed    RYG = "red"
	RYGYellow RYG = "yellow"
	RYGGreen  RYG = "green"
)

// ParseRYG validates a traffic-light value.
func ParseRYG(v string) (RYG, error) {
	switch r := RYG(strings.ToLower(strings.TrimSpace(v))); r {
	case RYGRed, RYGYellow, RYGGreen:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q (expected red|yellow|green)", ErrInvalidRYG, v)
}

// AuditAction labels an audit log entry.
type AuditAction string

const (
	AuditItemUpdate   AuditAction = "item_update"
	AuditStatusChange AuditAction = "status_change"
	AuditItemDelete   AuditAction = "item_delete"
)
