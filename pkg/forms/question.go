package forms

import (
	"strings"

	"github.com/google/uuid"
)

// NewQuestion returns a question with a fresh ID and the default text
// type, matching what the editor appends when the author adds a question.
func NewQuestion() Question {
	return Question{
		ID:   uuid.NewString(),
		Type: QuestionTypeText,
	}
}

// NewForm returns an empty form with a fresh ID. Timestamps are assigned
// by the store on create.
func NewForm(title string) Form {
	return Form{
		ID:    uuid.NewString(),
		Title: strings.TrimSpace(title),
	}
}

// Clone returns a deep copy of the question so callers can hand snapshots
// across goroutine boundaries without sharing the options slice or the
// validation rule.
func (q Question) Clone() Question {
	out := q
	if q.Validation != nil {
		rule := *q.Validation
		if q.Validation.MinLength != nil {
			v := *q.Validation.MinLength
			rule.MinLength = &v
		}
		if q.Validation.MaxLength != nil {
			v := *q.Validation.MaxLength
			rule.MaxLength = &v
		}
		if q.Validation.Min != nil {
			v := *q.Validation.Min
			rule.Min = &v
		}
		if q.Validation.Max != nil {
			v := *q.Validation.Max
			rule.Max = &v
		}
		out.Validation = &rule
	}
	if len(q.Options) > 0 {
		out.Options = append([]Option(nil), q.Options...)
	}
	return out
}

// Clone returns a deep copy of the form, cloning every question.
func (f Form) Clone() Form {
	out := f
	if len(f.Questions) > 0 {
		out.Questions = make([]Question, len(f.Questions))
		for i, q := range f.Questions {
			out.Questions[i] = q.Clone()
		}
	}
	return out
}

// Equal reports structural identity between two questions. The auto-save
// pipeline uses it to suppress writes for edits that round-trip to the
// last acknowledged snapshot (rapid undo, for example).
func (q Question) Equal(other Question) bool {
	if q.ID != other.ID ||
		q.Type != other.Type ||
		q.Label != other.Label ||
		q.Placeholder != other.Placeholder ||
		q.Value != other.Value {
		return false
	}
	if !rulesEqual(q.Validation, other.Validation) {
		return false
	}
	if len(q.Options) != len(other.Options) {
		return false
	}
	for i := range q.Options {
		if q.Options[i] != other.Options[i] {
			return false
		}
	}
	return true
}

// Equal reports structural identity between two forms: same identity,
// title, and question sequence. Timestamps are bookkeeping and excluded.
func (f Form) Equal(other Form) bool {
	if f.ID != other.ID || f.Title != other.Title {
		return false
	}
	if len(f.Questions) != len(other.Questions) {
		return false
	}
	for i := range f.Questions {
		if !f.Questions[i].Equal(other.Questions[i]) {
			return false
		}
	}
	return true
}

// QuestionIndex returns the position of the question with the given ID,
// or -1 when the form does not contain it.
func (f Form) QuestionIndex(id string) int {
	for i, q := range f.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func rulesEqual(a, b *ValidationRule) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Required == b.Required &&
		a.IsParagraph == b.IsParagraph &&
		a.Pattern == b.Pattern &&
		intPtrEqual(a.MinLength, b.MinLength) &&
		intPtrEqual(a.MaxLength, b.MaxLength) &&
		floatPtrEqual(a.Min, b.Min) &&
		floatPtrEqual(a.Max, b.Max)
}

func intPtrEqual(a, b *int) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
