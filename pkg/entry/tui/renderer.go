// Package tui renders a form as an interactive terminal entry session
// driven by survey prompts. Each question is validated as it is answered;
// a failing value re-prompts with the validation message, so the final
// submission always passes the full-schema check.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AdityaMittal31/FirstWork/pkg/entry"
	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	"github.com/AdityaMittal31/FirstWork/pkg/validation"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithDriver injects a custom prompt driver (tests use a scripted fake).
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithMaxAttempts caps how many times a failing value is re-prompted
// before the session errors out. Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		r.maxAttempts = n
	}
}

// Renderer implements entry.Renderer for terminal sessions. Render blocks
// on user interaction and returns the collected FormValues as JSON.
type Renderer struct {
	driver      PromptDriver
	maxAttempts int
}

// New constructs a TUI renderer with the survey driver by default.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:      newSurveyDriver(),
		maxAttempts: 3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render prompts for every definition-valid question in form order and
// returns the typed values as JSON. Prefills from options.Values become
// prompt defaults.
func (r *Renderer) Render(ctx context.Context, form forms.Form, options entry.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	validator := validation.CompileForm(form)
	raw := make(map[string]string)

	for _, q := range validator.Questions() {
		answer, err := r.promptQuestion(ctx, q, options.Values[q.ID])
		if err != nil {
			return nil, err
		}
		raw[q.ID] = answer
	}

	values, fieldErrors, err := entry.ParseSubmission(form, raw)
	if err != nil {
		if len(fieldErrors) > 0 {
			return nil, fmt.Errorf("tui: submission rejected: %v", fieldErrors)
		}
		return nil, err
	}
	return json.MarshalIndent(values, "", "  ")
}

func (r *Renderer) promptQuestion(ctx context.Context, q forms.Question, prefill string) (string, error) {
	attempts := 0
	defaultValue := prefill
	if defaultValue == "" {
		defaultValue = q.Value
	}

	for {
		answer, err := r.ask(ctx, q, defaultValue)
		if err != nil {
			return "", err
		}

		result := validation.ValidateValue(q, answer)
		if result.Valid {
			return answer, nil
		}

		attempts++
		if r.maxAttempts > 0 && attempts >= r.maxAttempts {
			return "", fmt.Errorf("tui: question %q: %s", q.Label, result.Reason)
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("✗ %s", result.Reason)); err != nil {
			return "", err
		}
		defaultValue = answer
	}
}

func (r *Renderer) ask(ctx context.Context, q forms.Question, defaultValue string) (string, error) {
	switch q.Type {
	case forms.QuestionTypeSelect:
		labels := make([]string, len(q.Options))
		defaultIndex := -1
		for i, opt := range q.Options {
			labels[i] = opt.Label
			if opt.Value == defaultValue {
				defaultIndex = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      q.Label,
			Options:      labels,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(q.Options) {
			return "", nil
		}
		return q.Options[idx].Value, nil

	case forms.QuestionTypeText:
		if q.Validation != nil && q.Validation.IsParagraph {
			return r.driver.TextArea(ctx, TextAreaConfig{
				Message: q.Label,
				Default: defaultValue,
			})
		}
		return r.driver.Input(ctx, InputConfig{
			Message:     q.Label,
			Default:     defaultValue,
			Placeholder: q.Placeholder,
		})

	default:
		return r.driver.Input(ctx, InputConfig{
			Message:     q.Label,
			Default:     defaultValue,
			Placeholder: q.Placeholder,
		})
	}
}

var _ entry.Renderer = (*Renderer)(nil)
