package mcmi

import "strings"

// Sex selects the normative Base-Rate tables.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex accepts "male"/"female" (case-insensitive) and the short
// forms "m"/"f".
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	default:
		return "", &ValidationError{Field: "sex", Reason: "must be male or female"}
	}
}

// InpatientStatus is the hospitalization code captured on the intake
// form. It selects the inpatient adjustment offsets.
type InpatientStatus string

const (
	Outpatient          InpatientStatus = "outpatient"
	InpatientUnder1Week InpatientStatus = "inpatient_lt_1w"
	Inpatient1To4Weeks  InpatientStatus = "inpatient_1_4w"
	InpatientOver4Weeks InpatientStatus = "inpatient_gt_4w"
)

// ParseInpatientStatus accepts the status names above or the portal's
// wire codes "1".."4".
func ParseInpatientStatus(s string) (InpatientStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", string(Outpatient):
		return Outpatient, nil
	case "2", string(InpatientUnder1Week):
		return InpatientUnder1Week, nil
	case "3", string(Inpatient1To4Weeks):
		return Inpatient1To4Weeks, nil
	case "4", string(InpatientOver4Weeks):
		return InpatientOver4Weeks, nil
	default:
		return "", &ValidationError{Field: "inpatient_status", Reason: "must be one of the four defined codes"}
	}
}

// RespondentContext is the demographic record captured with a test
// submission. It is immutable per scoring run; only Sex and
// InpatientStatus steer the computation, the rest rides along for the
// report header.
type RespondentContext struct {
	Name            string          `json:"name,omitempty"`
	Code            string          `json:"code,omitempty"`
	Sex             Sex             `json:"sex"`
	Age             int             `json:"age,omitempty"`
	Education       string          `json:"education,omitempty"`
	MaritalStatus   string          `json:"marital_status,omitempty"`
	InpatientStatus InpatientStatus `json:"inpatient_status"`
}

// Validate rejects a context the tables cannot be selected for.
func (rc RespondentContext) Validate() error {
	switch rc.Sex {
	case SexMale, SexFemale:
	default:
		return &ValidationError{Field: "sex", Reason: "must be male or female"}
	}
	if rc.Age < 0 {
		return &ValidationError{Field: "age", Reason: "must not be negative"}
	}
	switch rc.InpatientStatus {
	case Outpatient, InpatientUnder1Week, Inpatient1To4Weeks, InpatientOver4Weeks:
	default:
		return &ValidationError{Field: "inpatient_status", Reason: "must be one of the four defined codes"}
	}
	return nil
}
