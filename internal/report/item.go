package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
)

// ItemSummary renders the short plain-text SITREP for a single item.
func ItemSummary(it *domain.Item, l *Labels) string {
	var b strings.Builder
	b.WriteString(it.Title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s: %s\n", l.ProblemLabel, domain.StrOr(it.Problem, l.NotSpecified))
	fmt.Fprintf(&b, "%s: %s\n", l.UserLabel, domain.StrOr(it.UserContext, l.NotSpecified))
	fmt.Fprintf(&b, "%s: %s\n", l.SolutionLabel, domain.StrOr(it.MinSolution, l.NotSpecified))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", l.KPILabel, domain.StrOr(it.KPIName, l.NotSet))
	fmt.Fprintf(&b, "%s: %s → %s: %s\n",
		l.BaselineLabel, domain.StrOr(it.KPIBaseline, l.Dash),
		l.TargetLabel, domain.StrOr(it.KPITarget, l.Dash))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", l.StatusLabel, it.Status)
	fmt.Fprintf(&b, "%s: %s", l.OwnerLabel, it.OwnerID)
	return b.String()
}

// OnePager renders the item's one-page markdown brief, stamped with now.
func OnePager(it *domain.Item, now time.Time, l *Labels) string {
	firstMeasure := l.NotSet
	if it.FirstMeasureDue != nil {
		firstMeasure = l.LongDate(*it.FirstMeasureDue)
	}
	yesNo := func(v bool) string {
		if v {
			return l.Yes
		}
		return l.No
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", it.Title)
	section := func(heading, body string) {
		fmt.Fprintf(&b, "## %s\n%s\n\n", heading, body)
	}
	section(l.HeadingProblem, domain.StrOr(it.Problem, l.NotSpecified))
	section(l.HeadingUser, domain.StrOr(it.UserContext, l.NotSpecified))
	section(l.HeadingSolution, domain.StrOr(it.MinSolution, l.NotSpecified))

	fmt.Fprintf(&b, "## %s\n", l.HeadingKPI)
	fmt.Fprintf(&b, "- **%s:** %s\n", l.KPIName, domain.StrOr(it.KPIName, l.NotSet))
	fmt.Fprintf(&b, "- **%s:** %s\n", l.KPIBaseline, domain.StrOr(it.KPIBaseline, l.Dash))
	fmt.Fprintf(&b, "- **%s:** %s\n", l.KPITarget, domain.StrOr(it.KPITarget, l.Dash))
	fmt.Fprintf(&b, "- **%s:** %s\n\n", l.FirstMeasure, firstMeasure)

	section(l.HeadingRisk, domain.StrOr(it.RiskNote, l.NoRisk))
	section(l.HeadingRBAC, domain.StrOr(it.RBACNote, l.NoRBAC))

	fmt.Fprintf(&b, "## %s\n", l.HeadingStatus)
	fmt.Fprintf(&b, "- **%s:** %s\n", l.GoodEnoughDemo, yesNo(it.GoodEnoughDemo))
	fmt.Fprintf(&b, "- **%s:** %s\n", l.GoodEnoughMeas, yesNo(it.GoodEnoughMeasure))
	fmt.Fprintf(&b, "- **%s:** %s\n\n", l.GoodEnoughLog, yesNo(it.GoodEnoughLog))

	section(l.HeadingArtefact, domain.StrOr(it.ArtefactURL, l.NoArtefacts))

	fmt.Fprintf(&b, "---\n%s: %s", l.Generated, l.LongDate(now))
	return b.String()
}

// OnePagerFilename derives the download name for an item's one-pager: every
// rune outside [a-zA-Z0-9] becomes '_', the result is lowercased, and
// "_f3.md" is appended.
func OnePagerFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + "_f3.md"
}
