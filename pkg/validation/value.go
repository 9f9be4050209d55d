package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// ValidateValue checks a raw submitted value against a question's declared
// type and rule. It is pure: no I/O, deterministic for a given input.
// Empty values only fail when the rule marks the question required.
func ValidateValue(q forms.Question, raw string) Result {
	switch q.Type {
	case forms.QuestionTypeText:
		return validateText(q, raw)
	case forms.QuestionTypeNumber:
		return validateNumber(q, raw)
	case forms.QuestionTypeSelect:
		return validateSelect(q, raw)
	default:
		return fail("type required")
	}
}

// ParseValue converts a raw value into the scalar stored in FormValues:
// float64 for number questions, string otherwise. Callers should validate
// first; parse failures surface as the same message ValidateValue returns.
func ParseValue(q forms.Question, raw string) (any, error) {
	if q.Type != forms.QuestionTypeNumber {
		return raw, nil
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, fmt.Errorf("validation: parse number %q: %w", raw, err)
	}
	return n, nil
}

func validateText(q forms.Question, raw string) Result {
	rule := q.Validation
	trimmed := strings.TrimSpace(raw)

	if rule == nil {
		return ok()
	}
	if rule.Required && trimmed == "" {
		return fail("required")
	}
	if trimmed == "" {
		return ok()
	}
	length := len([]rune(raw))
	if rule.MinLength != nil && length < *rule.MinLength {
		return fail(fmt.Sprintf("must be at least %d characters", *rule.MinLength))
	}
	if rule.MaxLength != nil && length > *rule.MaxLength {
		return fail(fmt.Sprintf("must be at most %d characters", *rule.MaxLength))
	}
	if rule.Pattern != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fail("invalid pattern")
		}
		if !re.MatchString(raw) {
			return fail("invalid format")
		}
	}
	return ok()
}

func validateNumber(q forms.Question, raw string) Result {
	rule := q.Validation
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		if rule != nil && rule.Required {
			return fail("required")
		}
		return ok()
	}

	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fail("must be a number")
	}
	if rule == nil {
		return ok()
	}
	if rule.Min != nil && n < *rule.Min {
		return fail(fmt.Sprintf("must be at least %v", *rule.Min))
	}
	if rule.Max != nil && n > *rule.Max {
		return fail(fmt.Sprintf("must be at most %v", *rule.Max))
	}
	return ok()
}

func validateSelect(q forms.Question, raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if q.Validation != nil && q.Validation.Required {
			return fail("required")
		}
		return ok()
	}
	for _, opt := range q.Options {
		if opt.Value == trimmed {
			return ok()
		}
	}
	return fail("must be one of the listed options")
}
