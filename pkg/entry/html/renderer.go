// Package html renders a finalized form as an HTML entry form using
// embedded pongo2 templates. Author-provided text (labels, placeholders,
// option labels) is sanitized before it reaches the template.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/AdityaMittal31/FirstWork/pkg/entry"
	"github.com/AdityaMittal31/FirstWork/pkg/entry/template"
	"github.com/AdityaMittal31/FirstWork/pkg/entry/template/gotemplate"
	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	"github.com/AdityaMittal31/FirstWork/pkg/validation"
)

const (
	formTemplate = "templates/entry_form"

	themeAssetStylesheet = "entry.stylesheet"
)

// Option customises the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer template.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer implements entry.Renderer producing standalone HTML.
type Renderer struct {
	templates template.TemplateRenderer
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the entry form markup. Only definition-valid questions
// are rendered; malformed questions never reach the entry surface.
func (r *Renderer) Render(_ context.Context, form forms.Form, options entry.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	data := map[string]any{
		"form": map[string]any{
			"id":    form.ID,
			"title": sanitizeText(form.Title),
		},
		"action":    options.Action,
		"method":    submissionMethod(options.Method),
		"questions": buildQuestionViews(form, options),
		"hidden":    sortedHidden(options.Hidden),
		"theme":     buildThemeContext(options.Theme),
	}

	rendered, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(rendered), nil
}

type optionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type questionView struct {
	ID          string       `json:"id"`
	InputType   string       `json:"inputType"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       string       `json:"value,omitempty"`
	Required    bool         `json:"required"`
	IsParagraph bool         `json:"isParagraph"`
	IsSelect    bool         `json:"isSelect"`
	Options     []optionView `json:"options,omitempty"`
	MinLength   string       `json:"minLength,omitempty"`
	MaxLength   string       `json:"maxLength,omitempty"`
	Min         string       `json:"min,omitempty"`
	Max         string       `json:"max,omitempty"`
	Pattern     string       `json:"pattern,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

func buildQuestionViews(form forms.Form, options entry.RenderOptions) []questionView {
	views := make([]questionView, 0, len(form.Questions))
	for _, q := range form.Questions {
		if !validation.ValidateDefinition(q).Valid {
			continue
		}

		value := q.Value
		if prefill, ok := options.Values[q.ID]; ok {
			value = prefill
		}

		view := questionView{
			ID:          q.ID,
			InputType:   inputType(q.Type),
			Label:       sanitizeText(q.Label),
			Placeholder: sanitizeText(q.Placeholder),
			Value:       value,
			IsSelect:    q.Type == forms.QuestionTypeSelect,
			Errors:      options.Errors[q.ID],
		}

		if rule := q.Validation; rule != nil {
			view.Required = rule.Required
			view.IsParagraph = rule.IsParagraph
			view.Pattern = rule.Pattern
			if rule.MinLength != nil {
				view.MinLength = strconv.Itoa(*rule.MinLength)
			}
			if rule.MaxLength != nil {
				view.MaxLength = strconv.Itoa(*rule.MaxLength)
			}
			if rule.Min != nil {
				view.Min = strconv.FormatFloat(*rule.Min, 'f', -1, 64)
			}
			if rule.Max != nil {
				view.Max = strconv.FormatFloat(*rule.Max, 'f', -1, 64)
			}
		}

		for _, opt := range q.Options {
			view.Options = append(view.Options, optionView{
				Label:    sanitizeText(opt.Label),
				Value:    opt.Value,
				Selected: opt.Value == value,
			})
		}

		views = append(views, view)
	}
	return views
}

type hiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sortedHidden(fields map[string]string) []hiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]hiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, hiddenField{Name: name, Value: fields[name]})
	}
	return out
}

type themeContext struct {
	Name         string `json:"name,omitempty"`
	Variant      string `json:"variant,omitempty"`
	CSSVarsStyle string `json:"cssVarsStyle,omitempty"`
	Stylesheet   string `json:"stylesheet,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
	}
	ctx.CSSVarsStyle = cssVarsStyle(cfg.CSSVars)
	if resolved := cfg.AssetURL(themeAssetStylesheet); strings.TrimSpace(resolved) != "" {
		ctx.Stylesheet = resolved
	}
	return ctx
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func inputType(t forms.QuestionType) string {
	if t == forms.QuestionTypeNumber {
		return "number"
	}
	return "text"
}

func submissionMethod(method string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(method))
	if trimmed == "" {
		return "POST"
	}
	return trimmed
}

var _ entry.Renderer = (*Renderer)(nil)
