package entry

import (
	"errors"
	"fmt"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	"github.com/AdityaMittal31/FirstWork/pkg/validation"
)

// ErrInvalidSubmission signals that at least one field failed validation.
// The accompanying error map names every failing question.
var ErrInvalidSubmission = errors.New("entry: submission invalid")

// ParseSubmission validates a raw submission against the form atomically:
// every field passes together or the submission does not proceed. On
// failure the returned map carries the per-question messages and the error
// wraps ErrInvalidSubmission; on success the typed FormValues mapping is
// returned.
func ParseSubmission(form forms.Form, raw map[string]string) (forms.FormValues, map[string][]string, error) {
	validator := validation.CompileForm(form)

	failures := validator.Validate(raw)
	if len(failures) > 0 {
		fieldErrors := make(map[string][]string, len(failures))
		for _, f := range failures {
			fieldErrors[f.QuestionID] = append(fieldErrors[f.QuestionID], f.Reason)
		}
		return nil, fieldErrors, fmt.Errorf("%w: %d field(s) failed", ErrInvalidSubmission, len(fieldErrors))
	}

	values, err := validator.Values(raw)
	if err != nil {
		return nil, nil, err
	}
	return values, nil, nil
}
