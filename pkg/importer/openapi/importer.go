// Package openapi builds form questions from an OpenAPI operation's
// request schema, so existing API definitions can seed a form instead of
// authoring every question by hand.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// LoadDocument reads and parses an OpenAPI document from disk.
func LoadDocument(ctx context.Context, path string) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi importer: load %q: %w", path, err)
	}
	return doc, nil
}

// LoadDocumentFromData parses an in-memory OpenAPI payload.
func LoadDocumentFromData(ctx context.Context, raw []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi importer: load document: %w", err)
	}
	return doc, nil
}

// Import converts the request-body schema of the named operation into a
// form: one question per top-level property, ordered by property name.
// String properties become text questions, numeric ones number questions,
// and enums select questions.
func Import(doc *openapi3.T, operationID string) (forms.Form, error) {
	if doc == nil {
		return forms.Form{}, errors.New("openapi importer: document is required")
	}

	operation, err := findOperation(doc, operationID)
	if err != nil {
		return forms.Form{}, err
	}

	schema := requestSchema(operation)
	if schema == nil {
		return forms.Form{}, fmt.Errorf("openapi importer: operation %q has no request schema", operationID)
	}

	form := forms.NewForm(titleFor(operation, operationID))

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		q, ok := questionFrom(name, ref.Value, required[name])
		if !ok {
			continue
		}
		form.Questions = append(form.Questions, q)
	}

	if len(form.Questions) == 0 {
		return forms.Form{}, fmt.Errorf("openapi importer: operation %q produced no questions", operationID)
	}
	return form, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc.Paths == nil {
		return nil, errors.New("openapi importer: document has no paths")
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op, nil
			}
		}
	}
	return nil, fmt.Errorf("openapi importer: operation %q not found", operationID)
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func questionFrom(name string, schema *openapi3.Schema, required bool) (forms.Question, bool) {
	q := forms.Question{
		ID:    uuid.NewString(),
		Label: labelFor(name, schema),
	}

	rule := &forms.ValidationRule{Required: required}

	switch {
	case len(schema.Enum) > 0:
		q.Type = forms.QuestionTypeSelect
		for _, value := range schema.Enum {
			text := fmt.Sprint(value)
			if strings.TrimSpace(text) == "" {
				continue
			}
			q.Options = append(q.Options, forms.Option{Label: text, Value: text})
		}
		if len(q.Options) == 0 {
			return forms.Question{}, false
		}

	case typeIs(schema.Type, "integer"), typeIs(schema.Type, "number"):
		q.Type = forms.QuestionTypeNumber
		if schema.Min != nil {
			value := *schema.Min
			rule.Min = &value
		}
		if schema.Max != nil {
			value := *schema.Max
			rule.Max = &value
		}

	case typeIs(schema.Type, "string"):
		q.Type = forms.QuestionTypeText
		if schema.MinLength != 0 {
			value := int(schema.MinLength)
			rule.MinLength = &value
		}
		if schema.MaxLength != nil {
			value := int(*schema.MaxLength)
			rule.MaxLength = &value
		}
		rule.Pattern = schema.Pattern
		rule.IsParagraph = schema.Format == "textarea" || schema.Format == "markdown"

	default:
		// Arrays, objects, and booleans have no question equivalent.
		return forms.Question{}, false
	}

	if rule.Required || rule.Min != nil || rule.Max != nil ||
		rule.MinLength != nil || rule.MaxLength != nil ||
		rule.Pattern != "" || rule.IsParagraph {
		q.Validation = rule
	}
	return q, true
}

func typeIs(types *openapi3.Types, want string) bool {
	if types == nil {
		return false
	}
	for _, t := range types.Slice() {
		if t == want {
			return true
		}
	}
	return false
}

func labelFor(name string, schema *openapi3.Schema) string {
	if schema.Title != "" {
		return schema.Title
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return name
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}

func titleFor(operation *openapi3.Operation, operationID string) string {
	if operation.Summary != "" {
		return operation.Summary
	}
	return operationID
}
