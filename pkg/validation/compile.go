package validation

import "github.com/AdityaMittal31/FirstWork/pkg/forms"

// FieldError pairs a question with the reason its submitted value failed.
type FieldError struct {
	QuestionID string `json:"questionId"`
	Reason     string `json:"reason"`
}

// FormValidator checks a full set of submitted values against one form.
// It is compiled once per finalized form and reused across submissions.
type FormValidator struct {
	questions []forms.Question
}

// CompileForm builds a FormValidator from the form's questions. Questions
// that fail definition validation are excluded: the entry surface must
// never evaluate values against a malformed definition.
func CompileForm(form forms.Form) *FormValidator {
	compiled := make([]forms.Question, 0, len(form.Questions))
	for _, q := range form.Questions {
		if ValidateDefinition(q).Valid {
			compiled = append(compiled, q.Clone())
		}
	}
	return &FormValidator{questions: compiled}
}

// Questions returns the compiled (definition-valid) question sequence in
// form order.
func (v *FormValidator) Questions() []forms.Question {
	out := make([]forms.Question, len(v.questions))
	copy(out, v.questions)
	return out
}

// Validate runs every question's value check over the raw submission.
// The check is atomic: all fields pass together or the returned slice
// names every failing field and the submission must not proceed. Missing
// entries in raw are treated as empty values.
func (v *FormValidator) Validate(raw map[string]string) []FieldError {
	var failures []FieldError
	for _, q := range v.questions {
		result := ValidateValue(q, raw[q.ID])
		if !result.Valid {
			failures = append(failures, FieldError{QuestionID: q.ID, Reason: result.Reason})
		}
	}
	return failures
}

// Values converts a raw submission into typed FormValues. Callers must
// run Validate first; a parse error here means the submission was not
// validated.
func (v *FormValidator) Values(raw map[string]string) (forms.FormValues, error) {
	values := make(forms.FormValues, len(v.questions))
	for _, q := range v.questions {
		parsed, err := ParseValue(q, raw[q.ID])
		if err != nil {
			return nil, err
		}
		if parsed == nil || parsed == "" {
			continue
		}
		values[q.ID] = parsed
	}
	return values, nil
}
