package report

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday of ISO week 25.
var testNow = time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)

func newItem(stage domain.Stage, created time.Time, tags ...string) *domain.Item {
	return &domain.Item{Title: "t", Status: stage, CreatedAt: created, Tags: tags}
}

func TestWeekly_EmptyItems(t *testing.T) {
	k := kpi.Calculate(nil, testNow)
	got := Weekly(nil, k, testNow, &Norwegian)

	want := `SITREP UKE 2025-W25

F1 Volum: 0 nye idéer denne uken
F1→F2 Konvertering: 0% (RED)
F1→F2 Ledetid: 0 dager (median)

Aktive prosjekter: 0 i Discovery, 0 i Development
Fullført denne perioden: 0 items i Done

Top Tags: ingen

Neste uke: Fokus på å øke conversion rate og redusere ledetid.`
	assert.Equal(t, want, got)
}

func TestWeekly_EnglishPlaceholder(t *testing.T) {
	got := Weekly(nil, kpi.Calculate(nil, testNow), testNow, &English)
	assert.True(t, strings.HasPrefix(got, "SITREP WEEK 2025-W25\n"))
	assert.Contains(t, got, "Top Tags: none")
}

func TestWeekly_CountsFullSetAndTagsThisWeek(t *testing.T) {
	monday := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	old := time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)
	items := []*domain.Item{
		newItem(domain.StageNew, monday, "ai", "ops"),
		newItem(domain.StageDiscovery, monday, "ops"),
		newItem(domain.StageDiscovery, old, "legacy", "legacy2", "legacy3"),
		newItem(domain.StageDevelopment, old),
		newItem(domain.StageDone, old),
		newItem(domain.StageDone, monday, "data"),
	}
	got := Weekly(items, kpi.Calculate(items, testNow), testNow, &Norwegian)

	assert.Contains(t, got, "Aktive prosjekter: 2 i Discovery, 1 i Development")
	assert.Contains(t, got, "Fullført denne perioden: 2 items i Done")
	assert.Contains(t, got, "Top Tags: ops, ai, data")
	assert.Contains(t, got, "F1 Volum: 1 nye idéer denne uken")
}

func TestWeekly_HeaderUsesCalendarYearAtBoundary(t *testing.T) {
	// 2027-01-01 is in ISO week 53 of 2026; the header keeps the calendar year.
	now := time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC)
	got := Weekly(nil, kpi.Calculate(nil, now), now, &Norwegian)
	assert.True(t, strings.HasPrefix(got, "SITREP UKE 2027-W53\n"), got)
}

func TestTopTags_TiesKeepFirstSeenOrder(t *testing.T) {
	items := []*domain.Item{
		newItem(domain.StageNew, testNow, "zeta", "alpha"),
		newItem(domain.StageNew, testNow, "mid", "alpha"),
		newItem(domain.StageNew, testNow, "beta", "zeta"),
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, TopTags(items, 3))
	assert.Equal(t, []string{"zeta"}, TopTags(items, 1))
	assert.Empty(t, TopTags(nil, 3))
}

func TestStageCounts_AllStagesPresent(t *testing.T) {
	counts := StageCounts(nil)
	require.Len(t, counts, 4)
	for _, st := range domain.Stages {
		assert.Equal(t, 0, counts[st])
	}
}

func TestItemSummary_Placeholders(t *testing.T) {
	it := &domain.Item{Title: "Smarter triage", Status: domain.StageNew, OwnerID: "user1"}
	want := `Smarter triage

Problem: Ikke spesifisert
Bruker: Ikke spesifisert
Løsning: Ikke spesifisert

KPI: Ikke satt
Baseline: - → Target: -

Status: status1
Eier: user1`
	assert.Equal(t, want, ItemSummary(it, &Norwegian))
}

func TestItemSummary_Filled(t *testing.T) {
	it := &domain.Item{
		Title:       "Smarter triage",
		Status:      domain.StageDiscovery,
		OwnerID:     "kari",
		Problem:     domain.StrPtr("Slow routing"),
		UserContext: domain.StrPtr("Support desk"),
		MinSolution: domain.StrPtr("Keyword rules"),
		KPIName:     domain.StrPtr("Time to assign"),
		KPIBaseline: domain.StrPtr("4h"),
		KPITarget:   domain.StrPtr("1h"),
	}
	got := ItemSummary(it, &English)
	assert.Contains(t, got, "Problem: Slow routing\nUser: Support desk\nSolution: Keyword rules")
	assert.Contains(t, got, "Baseline: 4h → Target: 1h")
	assert.True(t, strings.HasSuffix(got, "Owner: kari"))
}

func TestOnePager_Norwegian(t *testing.T) {
	due := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	it := &domain.Item{
		Title:           "Smarter triage",
		Problem:         domain.StrPtr("Slow routing"),
		KPIName:         domain.StrPtr("Time to assign"),
		FirstMeasureDue: &due,
		GoodEnoughDemo:  true,
		GoodEnoughLog:   true,
	}
	got := OnePager(it, testNow, &Norwegian)

	want := `# Smarter triage

## Problem
Slow routing

## Brukerkontekst
Ikke spesifisert

## Minimal løsning
Ikke spesifisert

## KPI/Gevinst
- **Navn:** Time to assign
- **Baseline:** -
- **Target:** -
- **Første måling:** 1. september 2025

## Risiko
Ingen risikoer notert

## RBAC
Ingen RBAC-notater

## Status
- **Godt-nok demo:** Ja
- **Godt-nok måling:** Nei
- **Godt-nok logg:** Ja

## Artefakter
Ingen artefakter

---
Generert: 18. juni 2025`
	assert.Equal(t, want, got)
}

func TestOnePagerFilename(t *testing.T) {
	cases := map[string]string{
		"Smarter Triage": "smarter_triage_f3.md",
		"AI/ML pilot #2": "ai_ml_pilot__2_f3.md",
		"Bedre søk":      "bedre_s_k_f3.md",
		"":               "_f3.md",
		"ALLCAPS123":     "allcaps123_f3.md",
	}
	for in, want := range cases {
		assert.Equal(t, want, OnePagerFilename(in), in)
	}
}

func TestLabelsFor(t *testing.T) {
	assert.Same(t, &Norwegian, LabelsFor("nb"))
	assert.Same(t, &Norwegian, LabelsFor("nb-NO"))
	assert.Same(t, &English, LabelsFor("en"))
	assert.Same(t, &English, LabelsFor("en-US"))
	assert.Same(t, &Norwegian, LabelsFor(""))
	assert.Same(t, &Norwegian, LabelsFor("not a tag!"))
}

func TestLongDate(t *testing.T) {
	d := time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "3. desember 2025", Norwegian.LongDate(d))
	assert.Equal(t, "3. December 2025", English.LongDate(d))
}
