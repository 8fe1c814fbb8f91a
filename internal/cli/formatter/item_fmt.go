package formatter

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/alexanderramin/cocoon/internal/domain"
)

// FormatItemList renders items as a table, newest first as given.
func FormatItemList(items []*domain.Item) string {
	headers := []string{"ID", "TITLE", "STAGE", "OWNER", "RYG", "GOOD-ENOUGH", "TAGS", "CREATED"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			TruncID(it.ID),
			Truncate(it.Title, 40),
			StagePill(it.Status),
			it.OwnerID,
			ItemRYG(it.RYGStatus),
			GoodEnoughMeter(it),
			Tags(it.Tags),
			HumanDate(it.CreatedAt.Local()),
		})
	}
	return RenderTable(headers, rows, "No items.")
}

// FormatItemDetail renders every field of an item inside a box.
func FormatItemDetail(it *domain.Item) string {
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-16s", label)), value)
	}

	field("ID", it.ID)
	field("Stage", StagePill(it.Status))
	field("Owner", it.OwnerID)
	field("RYG", ItemRYG(it.RYGStatus))
	field("Tags", Tags(it.Tags))
	field("Created", it.CreatedAt.Local().Format("2006-01-02 15:04"))
	if it.F1LockedAt != nil {
		field("Left New", it.F1LockedAt.Local().Format("2006-01-02 15:04"))
	}

	b.WriteString("\n" + Header("Problem") + "\n")
	field("Problem", Text(it.Problem))
	field("User context", Text(it.UserContext))
	field("Min. solution", Text(it.MinSolution))
	field("Current", Text(it.CurrentSolution))
	field("Resources", Text(it.ResourceAssessment))

	b.WriteString("\n" + Header("KPI") + "\n")
	field("Name", Text(it.KPIName))
	field("Baseline", Text(it.KPIBaseline))
	field("Target", Text(it.KPITarget))
	field("First measure", ShortDate(it.FirstMeasureDue))

	b.WriteString("\n" + Header("Governance") + "\n")
	field("Risk", Text(it.RiskNote))
	field("PII", Check(it.PIIFlag))
	field("RBAC", Text(it.RBACNote))
	field("Artefact", Text(it.ArtefactURL))
	field("Time-box", fmt.Sprintf("%s → %s", ShortDate(it.TimeboxFrom), ShortDate(it.TimeboxTo)))

	b.WriteString("\n" + Header("Good enough") + "\n")
	field("Demo", Check(it.GoodEnoughDemo))
	field("Measure", Check(it.GoodEnoughMeasure))
	field("Log", Check(it.GoodEnoughLog))
	field("Progress", GoodEnoughMeter(it))
	if it.HasStopReason() {
		field("Stop reason", StyleRed.Render(*it.StopReason))
	}

	return RenderBox(it.Title, strings.TrimRight(b.String(), "\n"))
}

// FormatComments renders a comment thread in chronological order.
func FormatComments(comments []*domain.Comment) string {
	if len(comments) == 0 {
		return Dim("No comments.") + "\n"
	}
	var b strings.Builder
	for _, c := range comments {
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render(c.UserID), Dim(HumanTimestamp(c.CreatedAt)))
		for _, line := range strings.Split(c.Content, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

// FormatAuditLog renders audit entries as a table with the fields each
// entry changed.
func FormatAuditLog(entries []*domain.AuditLogEntry) string {
	headers := []string{"WHEN", "USER", "ACTION", "CHANGES"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.UserID,
			actionLabel(e.Action),
			Truncate(describeChange(e), 60),
		})
	}
	return RenderTable(headers, rows, "No audit entries.")
}

func actionLabel(a domain.AuditAction) string {
	switch a {
	case domain.AuditItemDelete:
		return StyleRed.Render(string(a))
	case domain.AuditStatusChange:
		return StyleYellow.Render(string(a))
	default:
		return StyleBlue.Render(string(a))
	}
}

func describeChange(e *domain.AuditLogEntry) string {
	if e.Action == domain.AuditStatusChange {
		from, to := stageOf(e.OldValue), stageOf(e.NewValue)
		return from + " → " + to
	}
	if e.NewValue == nil {
		return Dim("item removed")
	}
	fields := ChangedFields(e.OldValue, e.NewValue)
	if len(fields) == 0 {
		return Dim("no field changes")
	}
	return strings.Join(fields, ", ")
}

func stageOf(raw []byte) string {
	var v struct {
		Status domain.Stage `json:"status"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil || v.Status == "" {
		return placeholder
	}
	return v.Status.Label()
}

// ChangedFields lists, sorted, the top-level JSON keys whose values differ
// between two snapshots.
func ChangedFields(oldRaw, newRaw []byte) []string {
	var before, after map[string]any
	if len(oldRaw) > 0 {
		_ = json.Unmarshal(oldRaw, &before)
	}
	if len(newRaw) > 0 {
		_ = json.Unmarshal(newRaw, &after)
	}
	keys := map[string]bool{}
	for k := range before {
		keys[k] = true
	}
	for k := range after {
		keys[k] = true
	}
	var out []string
	for k := range keys {
		if !reflect.DeepEqual(before[k], after[k]) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FormatCreated confirms a newly created item.
func FormatCreated(it *domain.Item) string {
	return fmt.Sprintf("Created %s %s in %s\n", Bold(it.Title), TruncID(it.ID), StagePill(it.Status))
}

// FormatMoved confirms a stage transition.
func FormatMoved(it *domain.Item, from domain.Stage) string {
	line := fmt.Sprintf("Moved %s %s → %s", Bold(it.Title), StagePill(from), StagePill(it.Status))
	if from == domain.StageNew && it.F1LockedAt != nil {
		line += Dim(" (F1 locked " + it.F1LockedAt.Local().Format("2006-01-02") + ")")
	}
	return line + "\n"
}
