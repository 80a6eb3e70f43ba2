package mcmi

import "fmt"

// NumItems is the fixed length of an MCMI-II answer sheet.
const NumItems = 175

// AnswerVector is an immutable 175-item true/false response set. Build
// it through a constructor so length and completeness are enforced; the
// scorer assumes both.
type AnswerVector struct {
	items [NumItems]bool
}

// NewAnswerVector validates and copies a complete response slice.
func NewAnswerVector(answers []bool) (AnswerVector, error) {
	var v AnswerVector
	if len(answers) != NumItems {
		return v, &ValidationError{
			Field:  "answers",
			Reason: fmt.Sprintf("expected %d responses, got %d", NumItems, len(answers)),
		}
	}
	copy(v.items[:], answers)
	return v, nil
}

// NewAnswerVectorStrict builds a vector from a sheet that may carry
// unanswered items (nil entries). A missing answer is rejected, never
// defaulted.
func NewAnswerVectorStrict(answers []*bool) (AnswerVector, error) {
	var v AnswerVector
	if len(answers) != NumItems {
		return v, &ValidationError{
			Field:  "answers",
			Reason: fmt.Sprintf("expected %d responses, got %d", NumItems, len(answers)),
		}
	}
	for i, a := range answers {
		if a == nil {
			return AnswerVector{}, &ValidationError{
				Field:  "answers",
				Reason: fmt.Sprintf("item %d is unanswered", i+1),
			}
		}
		v.items[i] = *a
	}
	return v, nil
}

// At reports the response to item i (0-based).
func (v AnswerVector) At(i int) bool { return v.items[i] }
