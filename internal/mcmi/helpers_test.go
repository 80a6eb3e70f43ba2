package mcmi_test

import (
	"testing"
	"time"

	"github.com/payam1698/aistudio-final/internal/mcmi"
)

/* ---------------- In-memory fake that satisfies mcmi.Provider ---------------- */

type fakeProvider struct {
	ids   []string
	defs  map[string]mcmi.ScaleDefinition
	rules mcmi.CorrectionRules
}

func (p *fakeProvider) ScaleIDs() []string { return p.ids }

func (p *fakeProvider) Definition(id string) (mcmi.ScaleDefinition, error) {
	d, ok := p.defs[id]
	if !ok {
		return mcmi.ScaleDefinition{}, &mcmi.ConfigError{ScaleID: id, Reason: "not defined"}
	}
	return d, nil
}

func (p *fakeProvider) Rules() mcmi.CorrectionRules { return p.rules }

func (p *fakeProvider) put(d mcmi.ScaleDefinition) {
	if _, ok := p.defs[d.ID]; !ok {
		p.ids = append(p.ids, d.ID)
	}
	p.defs[d.ID] = d
}

func brBoth(vals ...int) map[mcmi.Sex]mcmi.BRTable {
	t := mcmi.BRTable(vals)
	return map[mcmi.Sex]mcmi.BRTable{mcmi.SexMale: t, mcmi.SexFemale: t}
}

func tags(ts ...mcmi.CorrectionTag) []mcmi.CorrectionTag {
	out := make([]mcmi.CorrectionTag, 0, len(ts))
	return append(out, ts...)
}

func itemsTrue(indices ...int) []mcmi.Item {
	out := make([]mcmi.Item, 0, len(indices))
	for _, i := range indices {
		out = append(out, mcmi.Item{Index: i, ScoredTrue: true})
	}
	return out
}

// newFixtureProvider builds a small but complete scale set covering
// every correction tag combination the cascade distinguishes.
//
// With baseAnswers (only item 1 answered true) and a male respondent:
// disclosure raw 2 -> BR 10; scale T raw 1 -> BR 60 -> final 70.
func newFixtureProvider() *fakeProvider {
	p := &fakeProvider{defs: map[string]mcmi.ScaleDefinition{}}

	p.put(mcmi.ScaleDefinition{
		ID: "X", Code: "X", Name: "Disclosure", Disclosure: true,
		Items: []mcmi.Item{
			{Index: 0, ScoredTrue: true},
			{Index: 2, ScoredTrue: false},
			{Index: 3, ScoredTrue: true},
			{Index: 4, ScoredTrue: true},
		},
		BaseRates: map[mcmi.Sex]mcmi.BRTable{
			mcmi.SexMale:   {0, 5, 10, 20, 40},
			mcmi.SexFemale: {0, 4, 8, 16, 32},
		},
	})
	p.put(mcmi.ScaleDefinition{
		ID: "T", Code: "T", Name: "Drug Dependence",
		Tags:  tags(mcmi.TagFullDisclosure),
		Items: itemsTrue(0, 1),
		BaseRates: map[mcmi.Sex]mcmi.BRTable{
			mcmi.SexMale:   {40, 60, 90},
			mcmi.SexFemale: {35, 55, 75},
		},
	})
	p.put(mcmi.ScaleDefinition{
		ID: "S", Code: "S", Name: "Schizotypal",
		Tags:      tags(mcmi.TagHalfDisclosure),
		Items:     itemsTrue(5, 6),
		BaseRates: brBoth(30, 50, 70),
	})
	p.put(mcmi.ScaleDefinition{
		ID: "D", Code: "D", Name: "Histrionic",
		Tags:      tags(mcmi.TagFullDisclosure, mcmi.TagDenial),
		Items:     itemsTrue(7),
		BaseRates: brBoth(20, 60),
	})
	p.put(mcmi.ScaleDefinition{
		ID: "E", Code: "E", Name: "Dysthymia",
		Tags:      tags(mcmi.TagHalfDisclosure, mcmi.TagDebasement, mcmi.TagDefensiveness),
		Items:     itemsTrue(8, 9),
		BaseRates: brBoth(10, 50, 80),
	})
	p.put(mcmi.ScaleDefinition{
		ID: "I", Code: "I", Name: "Thought Disorder",
		Tags:      tags(mcmi.TagHalfDisclosure, mcmi.TagInpatient),
		Items:     itemsTrue(10),
		BaseRates: brBoth(25, 60),
	})
	p.put(mcmi.ScaleDefinition{
		ID: "N", Code: "N", Name: "Uncorrected",
		Tags:      tags(),
		Items:     itemsTrue(11),
		BaseRates: brBoth(15, 55),
	})
	p.put(mcmi.ScaleDefinition{
		ID: "B", Code: "B", Name: "Near Ceiling",
		Tags:      tags(mcmi.TagFullDisclosure),
		Items:     itemsTrue(12, 13, 14),
		BaseRates: brBoth(100, 110),
	})

	p.rules = mcmi.CorrectionRules{
		Denial:        mcmi.DenialRule{Indicators: []string{"T"}, Threshold: 85, Offsets: map[string]int{"D": -15}},
		Debasement:    mcmi.DebasementRule{Indicator: "S", Threshold: 70, Offsets: map[string]int{"E": 12}},
		Defensiveness: map[string]int{"E": -6},
		Inpatient: map[mcmi.InpatientStatus]map[string]int{
			mcmi.InpatientUnder1Week: {"I": 5},
			mcmi.Inpatient1To4Weeks:  {"I": 10},
			mcmi.InpatientOver4Weeks: {"I": 15},
		},
	}
	return p
}

func newFixtureScorer(t *testing.T, opts ...mcmi.Option) *mcmi.Scorer {
	t.Helper()
	opts = append([]mcmi.Option{mcmi.WithClock(fixedClock)}, opts...)
	s, err := mcmi.New(newFixtureProvider(), opts...)
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}
	return s
}

func fixedClock() time.Time {
	return time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC)
}

func baseAnswers() []bool {
	a := make([]bool, mcmi.NumItems)
	a[0] = true
	return a
}

func maleContext() mcmi.RespondentContext {
	return mcmi.RespondentContext{
		Name:            "Case 1",
		Sex:             mcmi.SexMale,
		Age:             34,
		InpatientStatus: mcmi.Outpatient,
	}
}

func mustScore(t *testing.T, s *mcmi.Scorer, answers []bool, rc mcmi.RespondentContext) mcmi.ScoreReport {
	t.Helper()
	report, err := s.ScoreResponses(answers, rc)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	return report
}
