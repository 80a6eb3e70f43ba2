package mcmi

import "fmt"

// ValidationError reports malformed caller input: a wrong-length answer
// vector, an unanswered item, or a respondent context the normative
// tables cannot be selected for. The submission must be corrected
// upstream; nothing is scored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigError reports an internally inconsistent scale definition set:
// an item index outside the answer sheet, a missing Base-Rate table, or
// a clinical scale with no correction classification. It indicates a
// data-loading defect, not a transient condition, and is never retried.
type ConfigError struct {
	ScaleID string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.ScaleID == "" {
		return "scale definitions: " + e.Reason
	}
	return fmt.Sprintf("scale %q: %s", e.ScaleID, e.Reason)
}
