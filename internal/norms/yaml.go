package norms

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/payam1698/aistudio-final/internal/mcmi"
)

// Document is the on-disk YAML schema for a normative table set. Item
// numbers are 1-based as printed on the clinical answer sheet; the
// loader shifts them to 0-based indices.
type Document struct {
	Version     int            `yaml:"version" json:"version"`
	Rounding    string         `yaml:"rounding,omitempty" json:"rounding,omitempty"`
	Scales      []ScaleDoc     `yaml:"scales" json:"scales"`
	Corrections CorrectionsDoc `yaml:"corrections,omitempty" json:"corrections,omitempty"`
}

type ScaleDoc struct {
	ID         string `yaml:"id" json:"id"`
	Code       string `yaml:"code,omitempty" json:"code,omitempty"`
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	Disclosure bool   `yaml:"disclosure,omitempty" json:"disclosure,omitempty"`

	// Corrections is the tag set ("x", "halfx", "da", "dd", "dc",
	// "inp"). A pointer so an absent key (unclassified) is
	// distinguishable from an explicitly empty list.
	Corrections *[]string `yaml:"corrections,omitempty" json:"corrections,omitempty"`

	Items     []ItemDoc        `yaml:"items" json:"items"`
	BaseRates map[string][]int `yaml:"base_rates" json:"base_rates"`
}

type ItemDoc struct {
	Item   int  `yaml:"item" json:"item"`
	Scored bool `yaml:"scored" json:"scored"`
}

type CorrectionsDoc struct {
	Denial        DenialDoc                 `yaml:"denial,omitempty" json:"denial,omitempty"`
	Debasement    DebasementDoc             `yaml:"debasement,omitempty" json:"debasement,omitempty"`
	Defensiveness map[string]int            `yaml:"defensiveness,omitempty" json:"defensiveness,omitempty"`
	Inpatient     map[string]map[string]int `yaml:"inpatient,omitempty" json:"inpatient,omitempty"`
}

type DenialDoc struct {
	Indicators []string       `yaml:"indicators,omitempty" json:"indicators,omitempty"`
	Threshold  int            `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Offsets    map[string]int `yaml:"offsets,omitempty" json:"offsets,omitempty"`
}

type DebasementDoc struct {
	Indicator string         `yaml:"indicator,omitempty" json:"indicator,omitempty"`
	Threshold int            `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Offsets   map[string]int `yaml:"offsets,omitempty" json:"offsets,omitempty"`
}

// ReadDocument parses a norms document without building the provider.
// Used by normsctl, which imports documents into the norms database.
func ReadDocument(path string) (Document, error) {
	var doc Document
	b, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read norms: %w", err)
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("parse norms: %w", err)
	}
	return doc, nil
}

// LoadFile reads, validates, and freezes a YAML norms document.
func LoadFile(path string) (*Static, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// Parse builds a provider from an in-memory YAML document.
func Parse(b []byte) (*Static, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse norms: %w", err)
	}
	return doc.Build()
}

// Build converts the document into a validated Static provider.
func (doc Document) Build() (*Static, error) {
	defs := make([]mcmi.ScaleDefinition, 0, len(doc.Scales))
	for _, sd := range doc.Scales {
		def := mcmi.ScaleDefinition{
			ID:         sd.ID,
			Code:       sd.Code,
			Name:       sd.Name,
			Disclosure: sd.Disclosure,
		}
		if def.Code == "" {
			def.Code = def.ID
		}
		if sd.Corrections != nil {
			tags := make([]mcmi.CorrectionTag, 0, len(*sd.Corrections))
			for _, t := range *sd.Corrections {
				tags = append(tags, mcmi.CorrectionTag(t))
			}
			def.Tags = tags
		}
		for _, it := range sd.Items {
			if it.Item < 1 || it.Item > mcmi.NumItems {
				return nil, &mcmi.ConfigError{ScaleID: sd.ID, Reason: fmt.Sprintf("item %d outside 1..%d", it.Item, mcmi.NumItems)}
			}
			def.Items = append(def.Items, mcmi.Item{Index: it.Item - 1, ScoredTrue: it.Scored})
		}
		def.BaseRates = make(map[mcmi.Sex]mcmi.BRTable, len(sd.BaseRates))
		for sexName, table := range sd.BaseRates {
			sex, err := mcmi.ParseSex(sexName)
			if err != nil {
				return nil, &mcmi.ConfigError{ScaleID: sd.ID, Reason: fmt.Sprintf("unknown sex %q in base_rates", sexName)}
			}
			def.BaseRates[sex] = mcmi.BRTable(table)
		}
		defs = append(defs, def)
	}
	rules, err := doc.rules()
	if err != nil {
		return nil, err
	}
	return NewStatic(defs, rules)
}

func (doc Document) rules() (mcmi.CorrectionRules, error) {
	r := mcmi.CorrectionRules{
		Rounding: mcmi.RoundingMode(doc.Rounding),
		Denial: mcmi.DenialRule{
			Indicators: doc.Corrections.Denial.Indicators,
			Threshold:  doc.Corrections.Denial.Threshold,
			Offsets:    doc.Corrections.Denial.Offsets,
		},
		Debasement: mcmi.DebasementRule{
			Indicator: doc.Corrections.Debasement.Indicator,
			Threshold: doc.Corrections.Debasement.Threshold,
			Offsets:   doc.Corrections.Debasement.Offsets,
		},
		Defensiveness: doc.Corrections.Defensiveness,
	}
	if r.Rounding == "" {
		r.Rounding = mcmi.RoundHalfUp
	}
	for statusName, offsets := range doc.Corrections.Inpatient {
		st, err := mcmi.ParseInpatientStatus(statusName)
		if err != nil {
			return r, &mcmi.ConfigError{Reason: fmt.Sprintf("unknown inpatient status %q", statusName)}
		}
		if r.Inpatient == nil {
			r.Inpatient = make(map[mcmi.InpatientStatus]map[string]int, len(doc.Corrections.Inpatient))
		}
		r.Inpatient[st] = offsets
	}
	return r, nil
}
