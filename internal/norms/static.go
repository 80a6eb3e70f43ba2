// Package norms supplies the scale-definition provider implementations:
// an in-memory snapshot, a YAML document loader, and a SQL-backed loader.
// Whatever the source, the tables are loaded whole into an immutable
// Static snapshot at startup; nothing reads the source during scoring.
package norms

import (
	"github.com/payam1698/aistudio-final/internal/mcmi"
)

// Static is an immutable in-memory scale-definition set. It satisfies
// mcmi.Provider and is safe for concurrent readers.
type Static struct {
	ids   []string
	defs  map[string]mcmi.ScaleDefinition
	rules mcmi.CorrectionRules
}

// NewStatic validates the given definitions and freezes them, preserving
// order. Duplicate ids and any per-scale inconsistency are ConfigErrors.
func NewStatic(defs []mcmi.ScaleDefinition, rules mcmi.CorrectionRules) (*Static, error) {
	s := &Static{defs: make(map[string]mcmi.ScaleDefinition, len(defs)), rules: rules}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.defs[d.ID]; dup {
			return nil, &mcmi.ConfigError{ScaleID: d.ID, Reason: "duplicate scale id"}
		}
		s.defs[d.ID] = d
		s.ids = append(s.ids, d.ID)
	}
	return s, nil
}

func (s *Static) ScaleIDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Static) Definition(id string) (mcmi.ScaleDefinition, error) {
	d, ok := s.defs[id]
	if !ok {
		return mcmi.ScaleDefinition{}, &mcmi.ConfigError{ScaleID: id, Reason: "not defined"}
	}
	return d, nil
}

func (s *Static) Rules() mcmi.CorrectionRules { return s.rules }
