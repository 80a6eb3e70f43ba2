package norms_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/payam1698/aistudio-final/internal/mcmi"
	"github.com/payam1698/aistudio-final/internal/norms"
)

func TestLoadFileFixture(t *testing.T) {
	p, err := norms.LoadFile("testdata/norms.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wantIDs := []string{"X", "4", "13", "17", "22"}
	if got := p.ScaleIDs(); !reflect.DeepEqual(got, wantIDs) {
		t.Fatalf("scale ids = %v, want %v", got, wantIDs)
	}

	x, err := p.Definition("X")
	if err != nil {
		t.Fatalf("definition X: %v", err)
	}
	if !x.Disclosure {
		t.Fatalf("X must be the disclosure scale")
	}
	// Sheet item numbers are 1-based in the document, 0-based in memory.
	wantItems := []mcmi.Item{
		{Index: 0, ScoredTrue: true},
		{Index: 2, ScoredTrue: false},
		{Index: 3, ScoredTrue: true},
	}
	if !reflect.DeepEqual(x.Items, wantItems) {
		t.Fatalf("X items = %v, want %v", x.Items, wantItems)
	}

	histrionic, err := p.Definition("4")
	if err != nil {
		t.Fatalf("definition 4: %v", err)
	}
	if histrionic.Code != "4" {
		t.Fatalf("code should default to the scale id, got %q", histrionic.Code)
	}
	if !histrionic.HasTag(mcmi.TagFullDisclosure) || !histrionic.HasTag(mcmi.TagDenial) {
		t.Fatalf("scale 4 tags = %v", histrionic.Tags)
	}
	if histrionic.Severe() {
		t.Fatalf("scale 4 must not be severe")
	}

	schizotypal, err := p.Definition("13")
	if err != nil {
		t.Fatalf("definition 13: %v", err)
	}
	if !schizotypal.Severe() {
		t.Fatalf("scale 13 must be severe")
	}
	if got := schizotypal.BaseRates[mcmi.SexFemale].Lookup(1); got != 36 {
		t.Fatalf("female BR for raw 1 = %d, want 36", got)
	}

	rules := p.Rules()
	if rules.Rounding != mcmi.RoundHalfUp {
		t.Fatalf("rounding = %q, want half_up", rules.Rounding)
	}
	if rules.Debasement.Indicator != "17" || rules.Debasement.Threshold != 75 {
		t.Fatalf("debasement rule = %+v", rules.Debasement)
	}
	if got := rules.Inpatient[mcmi.Inpatient1To4Weeks]["22"]; got != 8 {
		t.Fatalf("inpatient 1-4w offset = %d, want 8", got)
	}
}

func TestLoadedFixtureScores(t *testing.T) {
	p, err := norms.LoadFile("testdata/norms.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s, err := mcmi.New(p)
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}

	answers := make([]bool, mcmi.NumItems)
	answers[0] = true // X raw 2 -> male BR 10
	answers[1] = true // scale 4 raw 1 -> BR 45
	rc := mcmi.RespondentContext{Sex: mcmi.SexMale, Age: 40, InpatientStatus: mcmi.Outpatient}

	report, err := s.ScoreResponses(answers, rc)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if report.XScore != 10 {
		t.Fatalf("xScore = %d, want 10", report.XScore)
	}
	got := report.Scales["4"]
	if got.BaseRate != 45 || got.Final != 55 {
		t.Fatalf("scale 4 = %+v, want base rate 45 and final 55", got)
	}
}

func TestParseRejectsDefectiveDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"item number zero", `
scales:
  - id: "X"
    disclosure: true
    items: [{item: 0, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
`},
		{"item number beyond sheet", `
scales:
  - id: "X"
    disclosure: true
    items: [{item: 176, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
`},
		{"unclassified clinical scale", `
scales:
  - id: "X"
    disclosure: true
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
  - id: "1"
    items: [{item: 2, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
`},
		{"unknown correction tag", `
scales:
  - id: "1"
    corrections: [sideways]
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
`},
		{"full and half disclosure together", `
scales:
  - id: "1"
    corrections: [x, halfx]
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
`},
		{"non-monotonic base rates", `
scales:
  - id: "1"
    corrections: [x]
    items: [{item: 1, scored: true}]
    base_rates: {male: [10, 5], female: [0, 10]}
`},
		{"base rate above bound", `
scales:
  - id: "1"
    corrections: [x]
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 120], female: [0, 10]}
`},
		{"missing female table", `
scales:
  - id: "1"
    corrections: [x]
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 10]}
`},
		{"unknown sex key", `
scales:
  - id: "1"
    corrections: [x]
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10], other: [0, 10]}
`},
		{"duplicate scale id", `
scales:
  - id: "1"
    corrections: [x]
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
  - id: "1"
    corrections: [x]
    items: [{item: 2, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
`},
		{"unknown inpatient status", `
scales:
  - id: "1"
    corrections: [x]
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
corrections:
  inpatient:
    weekend: {"1": 3}
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := norms.Parse([]byte(tc.doc))
			var cerr *mcmi.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("got %v, want ConfigError", err)
			}
		})
	}
}

func TestEmptyCorrectionListIsClassified(t *testing.T) {
	doc := `
scales:
  - id: "X"
    disclosure: true
    items: [{item: 1, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
  - id: "1"
    corrections: []
    items: [{item: 2, scored: true}]
    base_rates: {male: [0, 10], female: [0, 10]}
`
	p, err := norms.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	def, err := p.Definition("1")
	if err != nil {
		t.Fatalf("definition: %v", err)
	}
	if def.Tags == nil || len(def.Tags) != 0 {
		t.Fatalf("tags = %v, want explicitly empty set", def.Tags)
	}
}
