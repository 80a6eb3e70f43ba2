package mcmi

import "fmt"

// RawScore tallies the responses that match a scale's scored direction:
// each member item contributes one point when answered the way the
// definition scores it, zero otherwise. An item index outside the sheet
// is a ConfigError, never silently skipped.
func RawScore(v AnswerVector, def ScaleDefinition) (int, error) {
	n := 0
	for _, it := range def.Items {
		if it.Index < 0 || it.Index >= NumItems {
			return 0, &ConfigError{ScaleID: def.ID, Reason: fmt.Sprintf("item index %d outside answer sheet", it.Index)}
		}
		if v.At(it.Index) == it.ScoredTrue {
			n++
		}
	}
	return n, nil
}
