package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
)

// FormatKPIs renders the weekly KPI panel with stage counts and top tags.
func FormatKPIs(k kpi.WeeklyKPIs, counts map[domain.Stage]int, topTags []string) string {
	var b strings.Builder

	week := fmt.Sprintf("%d-W%02d", k.Week.Start.Year(), kpi.ISOWeek(k.Week.Start))
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Week"), Bold(week))
	fmt.Fprintf(&b, "%-22s %s\n", "F1 volume", Bold(fmt.Sprintf("%d", k.F1Volume)))
	fmt.Fprintf(&b, "%-22s %s %s\n", "F1→F2 conversion",
		RenderConversion(k.F1ToF2Conversion, k.RYGStatus, 20), RYGIndicator(k.RYGStatus))
	fmt.Fprintf(&b, "%-22s %s\n", "F1→F2 lead time", Bold(fmt.Sprintf("%d days", k.F1ToF2LeadTimeMedian))+Dim(" (median)"))

	b.WriteString("\n" + Header("Pipeline") + "\n")
	for _, st := range domain.Stages {
		fmt.Fprintf(&b, "%s %d\n", PadRight(StagePill(st), 16), counts[st])
	}

	b.WriteString("\n" + Header("Top tags") + "\n")
	if len(topTags) == 0 {
		b.WriteString(Dim("none"))
	} else {
		b.WriteString(Tags(topTags))
	}

	return RenderBox("KPI", b.String())
}

// FormatKPIBar is the one-line KPI summary shown above the board.
func FormatKPIBar(k kpi.WeeklyKPIs) string {
	parts := []string{
		fmt.Sprintf("%s %s", Dim("F1 volume"), Bold(fmt.Sprintf("%d", k.F1Volume))),
		fmt.Sprintf("%s %s %s", Dim("F1→F2"), RenderConversion(k.F1ToF2Conversion, k.RYGStatus, 10), RYGIndicator(k.RYGStatus)),
		fmt.Sprintf("%s %s", Dim("lead time"), Bold(fmt.Sprintf("%dd", k.F1ToF2LeadTimeMedian))),
	}
	return strings.Join(parts, Dim("  │  "))
}
