package mcmi

import "fmt"

// DisclosureScaleID is the conventional id of the disclosure (X)
// validity scale. The scorer keys off ScaleDefinition.Disclosure, not
// the id, so fixture providers may name theirs differently.
const DisclosureScaleID = "X"

// CorrectionTag names one step of the correction cascade. A scale's tag
// set is its correction classification: it receives exactly the steps it
// is tagged for, in the fixed evaluation order full/half disclosure,
// denial, debasement, defensiveness, inpatient.
type CorrectionTag string

const (
	TagFullDisclosure CorrectionTag = "x"
	TagHalfDisclosure CorrectionTag = "halfx"
	TagDenial         CorrectionTag = "da"
	TagDebasement     CorrectionTag = "dd"
	TagDefensiveness  CorrectionTag = "dc"
	TagInpatient      CorrectionTag = "inp"
)

// Item is one scale-membership entry: the 0-based answer-sheet index and
// the response direction that earns the point.
type Item struct {
	Index      int
	ScoredTrue bool
}

// BRTable maps a raw count to its normative Base Rate: entry i is the BR
// for raw == i. Tables are monotonic non-decreasing; lookups outside the
// domain clamp to the nearest boundary rather than failing, so a scale
// always resolves to a value.
type BRTable []int

// Lookup resolves a raw count, clamping to the table boundaries.
func (t BRTable) Lookup(raw int) int {
	if len(t) == 0 {
		return 0
	}
	if raw < 0 {
		raw = 0
	}
	if raw >= len(t) {
		raw = len(t) - 1
	}
	return t[raw]
}

// Domain reports the inclusive raw-count range the table defines.
// Callers that care about boundary clamping can compare a raw score
// against it.
func (t BRTable) Domain() (lo, hi int) { return 0, len(t) - 1 }

func (t BRTable) monotonic() bool {
	for i := 1; i < len(t); i++ {
		if t[i] < t[i-1] {
			return false
		}
	}
	return true
}

// ScaleDefinition is one scale's normative configuration as supplied by
// a Provider: identity, item membership, per-sex Base-Rate tables, and
// the correction classification. Definitions are read-only per run.
type ScaleDefinition struct {
	ID         string
	Code       string
	Name       string
	Disclosure bool

	// Tags is the correction classification. nil means the provider
	// never classified the scale, which is a ConfigError for clinical
	// scales; an explicitly empty set means the Base Rate passes
	// through untouched.
	Tags []CorrectionTag

	Items     []Item
	BaseRates map[Sex]BRTable
}

// HasTag reports membership in a correction's applicability set.
func (d ScaleDefinition) HasTag(tag CorrectionTag) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Severe reports whether the scale takes the halved disclosure
// correction instead of the full one.
func (d ScaleDefinition) Severe() bool { return d.HasTag(TagHalfDisclosure) }

// Validate checks internal consistency. Every violation is a
// ConfigError: definitions come from loaded configuration, not from the
// respondent.
func (d ScaleDefinition) Validate() error {
	if d.ID == "" {
		return &ConfigError{Reason: "empty scale id"}
	}
	if len(d.Items) == 0 {
		return &ConfigError{ScaleID: d.ID, Reason: "no item membership"}
	}
	for _, it := range d.Items {
		if it.Index < 0 || it.Index >= NumItems {
			return &ConfigError{ScaleID: d.ID, Reason: fmt.Sprintf("item index %d outside answer sheet", it.Index)}
		}
	}
	for _, sex := range []Sex{SexMale, SexFemale} {
		t, ok := d.BaseRates[sex]
		if !ok || len(t) == 0 {
			return &ConfigError{ScaleID: d.ID, Reason: fmt.Sprintf("no base-rate table for sex %q", sex)}
		}
		if !t.monotonic() {
			return &ConfigError{ScaleID: d.ID, Reason: fmt.Sprintf("base-rate table for sex %q is not monotonic", sex)}
		}
		for raw, br := range t {
			if br < BRMin || br > BRMax {
				return &ConfigError{ScaleID: d.ID, Reason: fmt.Sprintf("base rate %d at raw %d outside [%d,%d]", br, raw, BRMin, BRMax)}
			}
		}
	}
	if d.Disclosure {
		if len(d.Tags) > 0 {
			return &ConfigError{ScaleID: d.ID, Reason: "disclosure scale must not carry corrections"}
		}
		return nil
	}
	if d.Tags == nil {
		return &ConfigError{ScaleID: d.ID, Reason: "no correction classification"}
	}
	full, half := false, false
	for _, t := range d.Tags {
		switch t {
		case TagFullDisclosure:
			full = true
		case TagHalfDisclosure:
			half = true
		case TagDenial, TagDebasement, TagDefensiveness, TagInpatient:
		default:
			return &ConfigError{ScaleID: d.ID, Reason: fmt.Sprintf("unknown correction tag %q", t)}
		}
	}
	if full && half {
		return &ConfigError{ScaleID: d.ID, Reason: "both full and half disclosure correction declared"}
	}
	return nil
}

// RoundingMode controls how the halved disclosure term resolves an
// exact .5. The authoritative scoring manual does not pin this down, so
// it is configuration rather than a hard-coded choice.
type RoundingMode string

const (
	RoundHalfUp   RoundingMode = "half_up"
	RoundHalfDown RoundingMode = "half_down"
	RoundHalfEven RoundingMode = "half_even"
)

// halfOf halves a non-negative score per the rounding mode.
func halfOf(x int, m RoundingMode) int {
	q := x / 2
	if x%2 == 0 {
		return q
	}
	switch m {
	case RoundHalfDown:
		return q
	case RoundHalfEven:
		if q%2 == 0 {
			return q
		}
		return q + 1
	default:
		return q + 1
	}
}

// DenialRule parameterizes the denial adjustment: if any indicator
// scale's Base Rate reaches the threshold, the per-scale offset applies.
type DenialRule struct {
	Indicators []string
	Threshold  int
	Offsets    map[string]int
}

// DebasementRule parameterizes the debasement adjustment, conditioned on
// a single indicator scale.
type DebasementRule struct {
	Indicator string
	Threshold int
	Offsets   map[string]int
}

// CorrectionRules carries the fixed numeric parameters of the cascade.
// Like the scale tables these are loaded configuration, kept out of the
// control flow so the cascade stays uniform across scales.
type CorrectionRules struct {
	Rounding      RoundingMode
	Denial        DenialRule
	Debasement    DebasementRule
	Defensiveness map[string]int
	Inpatient     map[InpatientStatus]map[string]int
}

// Provider supplies the loaded normative tables. Implementations must be
// immutable for the life of the process; the scorer reads them from
// concurrent runs without locking.
type Provider interface {
	// ScaleIDs lists every scale id in report order, disclosure included.
	ScaleIDs() []string
	// Definition resolves one scale's configuration.
	Definition(id string) (ScaleDefinition, error)
	// Rules returns the correction-rule parameters.
	Rules() CorrectionRules
}
