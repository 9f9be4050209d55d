package forms

import "time"

// QuestionType is the simplified enum for supported question kinds.
type QuestionType string

const (
	QuestionTypeText   QuestionType = "text"
	QuestionTypeNumber QuestionType = "number"
	QuestionTypeSelect QuestionType = "select"

	// QuestionTypeUnset marks a question whose author has not picked a
	// type yet. Definition validation rejects it until one is chosen.
	QuestionTypeUnset QuestionType = ""
)

// ValidationRule captures the optional constraints attached to a question.
// A nil field means unconstrained. Min/Max apply to number questions;
// MinLength/MaxLength/Pattern apply to text questions.
type ValidationRule struct {
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength   *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	IsParagraph bool     `json:"isParagraph,omitempty" yaml:"isParagraph,omitempty"`
}

// Option is a single choice presented by a select question. Label and
// Value must both be non-empty before the owning question is persisted.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Question models one input inside a form. Struct fields are annotated so
// stores and renderers can serialise them directly.
type Question struct {
	ID          string          `json:"id" yaml:"id"`
	Type        QuestionType    `json:"type" yaml:"type"`
	Label       string          `json:"label" yaml:"label"`
	Placeholder string          `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Validation  *ValidationRule `json:"validation,omitempty" yaml:"validation,omitempty"`
	Options     []Option        `json:"options,omitempty" yaml:"options,omitempty"`
	Value       string          `json:"value,omitempty" yaml:"value,omitempty"`
}

// Form is the top-level schema: an ordered sequence of questions plus
// identity and bookkeeping timestamps. ID is immutable after creation and
// UpdatedAt only ever moves forward.
type Form struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// FormValues maps question IDs to the scalar an end user submitted
// (string for text/select, float64 for number). Produced by the entry
// pipeline at submission time; never persisted by this module.
type FormValues map[string]any
