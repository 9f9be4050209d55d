package validation

import (
	"fmt"
	"strings"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// Result is the outcome of a validation check. Reason is empty when Valid.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func ok() Result {
	return Result{Valid: true}
}

func fail(reason string) Result {
	return Result{Valid: false, Reason: reason}
}

// ValidateDefinition checks the static shape of a question: the declared
// type, label, and rule coherence. It is independent of any submitted
// value and gates whether the auto-save pipeline may persist the question.
func ValidateDefinition(q forms.Question) Result {
	if strings.TrimSpace(q.Label) == "" {
		return fail("title required")
	}
	if q.Type == forms.QuestionTypeUnset {
		return fail("type required")
	}

	switch q.Type {
	case forms.QuestionTypeNumber:
		if q.Validation != nil && q.Validation.Min != nil && q.Validation.Max != nil {
			if *q.Validation.Min > *q.Validation.Max {
				return fail("min must not exceed max")
			}
		}
	case forms.QuestionTypeSelect:
		if len(q.Options) == 0 {
			return fail("select requires at least one option")
		}
		for i, opt := range q.Options {
			if strings.TrimSpace(opt.Label) == "" {
				return fail(fmt.Sprintf("option %d: label required", i+1))
			}
			if strings.TrimSpace(opt.Value) == "" {
				return fail(fmt.Sprintf("option %d: value required", i+1))
			}
		}
	case forms.QuestionTypeText:
		if q.Validation != nil && q.Validation.MinLength != nil && q.Validation.MaxLength != nil {
			if *q.Validation.MinLength > *q.Validation.MaxLength {
				return fail("minLength must not exceed maxLength")
			}
		}
	default:
		return fail(fmt.Sprintf("unsupported question type %q", q.Type))
	}

	return ok()
}
