// Package sheet parses submitted answer sheets: a respondent block plus
// the 175 responses, in YAML or JSON. It is the upstream validation
// layer in front of the scorer; missing answers and malformed
// demographics are rejected here.
package sheet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/payam1698/aistudio-final/internal/mcmi"
)

// File is the on-disk answer-sheet schema. Answers are tri-state so an
// unanswered item shows up as null instead of silently defaulting.
type File struct {
	Respondent Respondent `yaml:"respondent" json:"respondent"`
	Answers    []*bool    `yaml:"answers" json:"answers"`
}

type Respondent struct {
	Name          string `yaml:"name,omitempty" json:"name,omitempty"`
	Code          string `yaml:"code,omitempty" json:"code,omitempty"`
	Sex           string `yaml:"sex" json:"sex"`
	Age           int    `yaml:"age,omitempty" json:"age,omitempty"`
	Education     string `yaml:"education,omitempty" json:"education,omitempty"`
	MaritalStatus string `yaml:"marital_status,omitempty" json:"marital_status,omitempty"`

	// InpatientStatus takes the status names or the portal's wire codes
	// "1".."4". An omitted value means outpatient, matching the intake
	// form's preselected option.
	InpatientStatus string `yaml:"inpatient_status,omitempty" json:"inpatient_status,omitempty"`
}

// Load reads an answer sheet (.json is JSON, anything else YAML) and
// converts it into scorer inputs.
func Load(path string) (mcmi.AnswerVector, mcmi.RespondentContext, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return mcmi.AnswerVector{}, mcmi.RespondentContext{}, fmt.Errorf("read answer sheet: %w", err)
	}
	return parse(b, strings.EqualFold(filepath.Ext(path), ".json"))
}

func parse(b []byte, asJSON bool) (mcmi.AnswerVector, mcmi.RespondentContext, error) {
	var f File
	if asJSON {
		err := json.Unmarshal(b, &f)
		if err != nil {
			return mcmi.AnswerVector{}, mcmi.RespondentContext{}, fmt.Errorf("parse answer sheet: %w", err)
		}
	} else if err := yaml.Unmarshal(b, &f); err != nil {
		return mcmi.AnswerVector{}, mcmi.RespondentContext{}, fmt.Errorf("parse answer sheet: %w", err)
	}

	av, err := mcmi.NewAnswerVectorStrict(f.Answers)
	if err != nil {
		return mcmi.AnswerVector{}, mcmi.RespondentContext{}, err
	}

	sex, err := mcmi.ParseSex(f.Respondent.Sex)
	if err != nil {
		return mcmi.AnswerVector{}, mcmi.RespondentContext{}, err
	}
	status := mcmi.Outpatient
	if f.Respondent.InpatientStatus != "" {
		status, err = mcmi.ParseInpatientStatus(f.Respondent.InpatientStatus)
		if err != nil {
			return mcmi.AnswerVector{}, mcmi.RespondentContext{}, err
		}
	}

	rc := mcmi.RespondentContext{
		Name:            f.Respondent.Name,
		Code:            f.Respondent.Code,
		Sex:             sex,
		Age:             f.Respondent.Age,
		Education:       f.Respondent.Education,
		MaritalStatus:   f.Respondent.MaritalStatus,
		InpatientStatus: status,
	}
	if err := rc.Validate(); err != nil {
		return mcmi.AnswerVector{}, mcmi.RespondentContext{}, err
	}
	return av, rc, nil
}
