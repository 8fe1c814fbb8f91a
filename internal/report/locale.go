package report

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Labels holds every user-visible string the generators emit for one locale.
type Labels struct {
	Tag language.Tag

	// Weekly SITREP
	WeeklyHeader   string // year, week
	VolumeLine     string // volume
	ConversionLine string // percent, RYG
	LeadTimeLine   string // days
	ActiveLine     string // discovery, development
	DoneLine       string // done
	TopTagsLine    string // joined tags
	NoTags         string
	NextWeek       string

	// Item texts
	NotSpecified  string
	NotSet        string
	Dash          string
	ProblemLabel  string
	UserLabel     string
	SolutionLabel string
	KPILabel      string
	BaselineLabel string
	TargetLabel   string
	StatusLabel   string
	OwnerLabel    string

	// One-pager
	HeadingProblem  string
	HeadingUser     string
	HeadingSolution string
	HeadingKPI      string
	HeadingRisk     string
	HeadingRBAC     string
	HeadingStatus   string
	HeadingArtefact string
	KPIName         string
	KPIBaseline     string
	KPITarget       string
	FirstMeasure    string
	NoRisk          string
	NoRBAC          string
	NoArtefacts     string
	GoodEnoughDemo  string
	GoodEnoughMeas  string
	GoodEnoughLog   string
	Yes             string
	No              string
	Generated       string

	Months [12]string
}

// Norwegian is the default locale.
var Norwegian = Labels{
	Tag: language.MustParse("nb"),

	WeeklyHeader:   "SITREP UKE %d-W%d",
	VolumeLine:     "F1 Volum: %d nye idéer denne uken",
	ConversionLine: "F1→F2 Konvertering: %d%% (%s)",
	LeadTimeLine:   "F1→F2 Ledetid: %d dager (median)",
	ActiveLine:     "Aktive prosjekter: %d i Discovery, %d i Development",
	DoneLine:       "Fullført denne perioden: %d items i Done",
	TopTagsLine:    "Top Tags: %s",
	NoTags:         "ingen",
	NextWeek:       "Neste uke: Fokus på å øke conversion rate og redusere ledetid.",

	NotSpecified:  "Ikke spesifisert",
	NotSet:        "Ikke satt",
	Dash:          "-",
	ProblemLabel:  "Problem",
	UserLabel:     "Bruker",
	SolutionLabel: "Løsning",
	KPILabel:      "KPI",
	BaselineLabel: "Baseline",
	TargetLabel:   "Target",
	StatusLabel:   "Status",
	OwnerLabel:    "Eier",

	HeadingProblem:  "Problem",
	HeadingUser:     "Brukerkontekst",
	HeadingSolution: "Minimal løsning",
	HeadingKPI:      "KPI/Gevinst",
	HeadingRisk:     "Risiko",
	HeadingRBAC:     "RBAC",
	HeadingStatus:   "Status",
	HeadingArtefact: "Artefakter",
	KPIName:         "Navn",
	KPIBaseline:     "Baseline",
	KPITarget:       "Target",
	FirstMeasure:    "Første måling",
	NoRisk:          "Ingen risikoer notert",
	NoRBAC:          "Ingen RBAC-notater",
	NoArtefacts:     "Ingen artefakter",
	GoodEnoughDemo:  "Godt-nok demo",
	GoodEnoughMeas:  "Godt-nok måling",
	GoodEnoughLog:   "Godt-nok logg",
	Yes:             "Ja",
	No:              "Nei",
	Generated:       "Generert",

	Months: [12]string{
		"januar", "februar", "mars", "april", "mai", "juni",
		"juli", "august", "september", "oktober", "november", "desember",
	},
}

// English mirrors Norwegian for non-Norwegian readers.
var English = Labels{
	Tag: language.English,

	WeeklyHeader:   "SITREP WEEK %d-W%d",
	VolumeLine:     "F1 Volume: %d new ideas this week",
	ConversionLine: "F1→F2 Conversion: %d%% (%s)",
	LeadTimeLine:   "F1→F2 Lead time: %d days (median)",
	ActiveLine:     "Active projects: %d in Discovery, %d in Development",
	DoneLine:       "Completed this period: %d items in Done",
	TopTagsLine:    "Top Tags: %s",
	NoTags:         "none",
	NextWeek:       "Next week: Focus on raising the conversion rate and reducing lead time.",

	NotSpecified:  "Not specified",
	NotSet:        "Not set",
	Dash:          "-",
	ProblemLabel:  "Problem",
	UserLabel:     "User",
	SolutionLabel: "Solution",
	KPILabel:      "KPI",
	BaselineLabel: "Baseline",
	TargetLabel:   "Target",
	StatusLabel:   "Status",
	OwnerLabel:    "Owner",

	HeadingProblem:  "Problem",
	HeadingUser:     "User context",
	HeadingSolution: "Minimal solution",
	HeadingKPI:      "KPI/Benefit",
	HeadingRisk:     "Risk",
	HeadingRBAC:     "RBAC",
	HeadingStatus:   "Status",
	HeadingArtefact: "Artefacts",
	KPIName:         "Name",
	KPIBaseline:     "Baseline",
	KPITarget:       "Target",
	FirstMeasure:    "First measurement",
	NoRisk:          "No risks noted",
	NoRBAC:          "No RBAC notes",
	NoArtefacts:     "No artefacts",
	GoodEnoughDemo:  "Good-enough demo",
	GoodEnoughMeas:  "Good-enough measurement",
	GoodEnoughLog:   "Good-enough log",
	Yes:             "Yes",
	No:              "No",
	Generated:       "Generated",

	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

var supported = []*Labels{&Norwegian, &English}

// LabelsFor returns the labels best matching code (a BCP 47 tag such as
// "nb", "en-US"). Unknown or unparsable codes fall back to Norwegian.
func LabelsFor(code string) *Labels {
	tag, err := language.Parse(code)
	if err != nil {
		return &Norwegian
	}
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.Tag
	}
	_, idx, conf := language.NewMatcher(tags).Match(tag)
	if conf == language.No {
		return &Norwegian
	}
	return supported[idx]
}

// LongDate formats t as "d. MMMM yyyy" using the locale's month names.
func (l *Labels) LongDate(t time.Time) string {
	return fmt.Sprintf("%d. %s %d", t.Day(), l.Months[t.Month()-1], t.Year())
}
