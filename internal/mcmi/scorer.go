package mcmi

import (
	"fmt"
	"time"
)

// Scorer runs the MCMI-II pipeline against one loaded set of normative
// tables. It holds no per-run state, so a single Scorer serves
// arbitrarily many concurrent Score calls.
type Scorer struct {
	provider Provider
	rules    CorrectionRules
	now      func() time.Time
}

type Option func(*Scorer)

// WithClock overrides the test-date clock, e.g. to stamp reports with
// the submission time rather than the scoring time.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// WithRounding overrides the provider's half-disclosure rounding mode.
func WithRounding(m RoundingMode) Option {
	return func(s *Scorer) { s.rules.Rounding = m }
}

// New validates the provider's tables once up front so Score can treat
// them as trusted. Any inconsistency surfaces here as a ConfigError.
func New(p Provider, opts ...Option) (*Scorer, error) {
	s := &Scorer{provider: p, rules: p.Rules(), now: time.Now}
	if s.rules.Rounding == "" {
		s.rules.Rounding = RoundHalfUp
	}
	for _, o := range opts {
		o(s)
	}
	switch s.rules.Rounding {
	case RoundHalfUp, RoundHalfDown, RoundHalfEven:
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown rounding mode %q", s.rules.Rounding)}
	}

	ids := p.ScaleIDs()
	if len(ids) == 0 {
		return nil, &ConfigError{Reason: "provider lists no scales"}
	}
	known := make(map[string]bool, len(ids))
	disclosure := 0
	for _, id := range ids {
		def, err := p.Definition(id)
		if err != nil {
			return nil, err
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if known[id] {
			return nil, &ConfigError{ScaleID: id, Reason: "listed twice"}
		}
		known[id] = true
		if def.Disclosure {
			disclosure++
		}
	}
	if disclosure != 1 {
		return nil, &ConfigError{Reason: fmt.Sprintf("expected exactly one disclosure scale, found %d", disclosure)}
	}
	for _, id := range s.rules.Denial.Indicators {
		if !known[id] {
			return nil, &ConfigError{ScaleID: id, Reason: "denial indicator is not a defined scale"}
		}
	}
	if ind := s.rules.Debasement.Indicator; ind != "" && !known[ind] {
		return nil, &ConfigError{ScaleID: ind, Reason: "debasement indicator is not a defined scale"}
	}
	return s, nil
}

// ScoreResponses validates a raw 175-response slice and scores it.
func (s *Scorer) ScoreResponses(answers []bool, rc RespondentContext) (ScoreReport, error) {
	v, err := NewAnswerVector(answers)
	if err != nil {
		return ScoreReport{}, err
	}
	return s.Score(v, rc)
}

// Score converts one validated answer vector plus respondent context
// into a complete ScoreReport. It either fully succeeds or returns a
// ValidationError/ConfigError; no partial report is ever produced. Two
// calls with identical inputs (and clock) yield identical reports.
func (s *Scorer) Score(answers AnswerVector, rc RespondentContext) (ScoreReport, error) {
	if err := rc.Validate(); err != nil {
		return ScoreReport{}, err
	}

	var xDef *ScaleDefinition
	clinical := make([]ScaleDefinition, 0, len(s.provider.ScaleIDs()))
	for _, id := range s.provider.ScaleIDs() {
		def, err := s.provider.Definition(id)
		if err != nil {
			return ScoreReport{}, err
		}
		if def.Disclosure {
			d := def
			xDef = &d
			continue
		}
		clinical = append(clinical, def)
	}
	if xDef == nil {
		return ScoreReport{}, &ConfigError{Reason: "no disclosure scale defined"}
	}

	// Disclosure first: its Base Rate is the correction term for every
	// other scale. The cascade never touches the disclosure scale
	// itself.
	xRaw, err := RawScore(answers, *xDef)
	if err != nil {
		return ScoreReport{}, err
	}
	xScore, err := baseRate(*xDef, rc.Sex, xRaw)
	if err != nil {
		return ScoreReport{}, err
	}

	results := make(map[string]*ScaleResult, len(clinical))
	defs := make(map[string]ScaleDefinition, len(clinical))
	for _, def := range clinical {
		raw, err := RawScore(answers, def)
		if err != nil {
			return ScoreReport{}, err
		}
		br, err := baseRate(def, rc.Sex, raw)
		if err != nil {
			return ScoreReport{}, err
		}
		results[def.ID] = &ScaleResult{
			Code:     def.Code,
			Name:     def.Name,
			Raw:      raw,
			BaseRate: br,
			Final:    br,
		}
		defs[def.ID] = def
	}

	applyCorrections(results, defs, s.rules, xScore, rc.InpatientStatus)

	scales := make(map[string]ScaleResult, len(results))
	for id, r := range results {
		scales[id] = *r
	}
	return ScoreReport{
		XRaw:     xRaw,
		XScore:   xScore,
		Scales:   scales,
		TestDate: s.now().UTC(),
	}, nil
}
