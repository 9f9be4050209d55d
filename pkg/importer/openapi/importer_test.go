package openapi_test

import (
	"context"
	"testing"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	openapiimport "github.com/AdityaMittal31/FirstWork/pkg/importer/openapi"
)

const signupSpec = `
openapi: 3.0.3
info:
  title: Accounts
  version: 1.0.0
paths:
  /signup:
    post:
      operationId: createAccount
      summary: Create account
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [full_name]
              properties:
                full_name:
                  type: string
                  minLength: 2
                  maxLength: 80
                age:
                  type: integer
                  minimum: 13
                  maximum: 120
                plan:
                  type: string
                  enum: [free, pro]
                bio:
                  type: string
                  format: textarea
                newsletter:
                  type: boolean
                tags:
                  type: array
                  items:
                    type: string
      responses:
        "201":
          description: created
`

func importForm(t *testing.T) forms.Form {
	t.Helper()
	doc, err := openapiimport.LoadDocumentFromData(context.Background(), []byte(signupSpec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form, err := openapiimport.Import(doc, "createAccount")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return form
}

func questionByLabel(t *testing.T, form forms.Form, label string) forms.Question {
	t.Helper()
	for _, q := range form.Questions {
		if q.Label == label {
			return q
		}
	}
	t.Fatalf("question %q not found in %v", label, form.Questions)
	return forms.Question{}
}

func TestImportBuildsQuestionsFromRequestSchema(t *testing.T) {
	form := importForm(t)

	if form.Title != "Create account" {
		t.Fatalf("expected operation summary as title, got %q", form.Title)
	}

	// Booleans and arrays have no question equivalent.
	if got := len(form.Questions); got != 4 {
		t.Fatalf("expected 4 questions, got %d: %v", got, form.Questions)
	}
}

func TestImportStringProperty(t *testing.T) {
	form := importForm(t)
	q := questionByLabel(t, form, "Full name")

	if q.Type != forms.QuestionTypeText {
		t.Fatalf("expected text type, got %q", q.Type)
	}
	if q.Validation == nil || !q.Validation.Required {
		t.Fatal("expected required rule from schema required list")
	}
	if q.Validation.MinLength == nil || *q.Validation.MinLength != 2 {
		t.Fatalf("expected minLength 2, got %v", q.Validation.MinLength)
	}
	if q.Validation.MaxLength == nil || *q.Validation.MaxLength != 80 {
		t.Fatalf("expected maxLength 80, got %v", q.Validation.MaxLength)
	}
}

func TestImportNumericProperty(t *testing.T) {
	form := importForm(t)
	q := questionByLabel(t, form, "Age")

	if q.Type != forms.QuestionTypeNumber {
		t.Fatalf("expected number type, got %q", q.Type)
	}
	if q.Validation == nil || q.Validation.Min == nil || *q.Validation.Min != 13 {
		t.Fatalf("expected min 13, got %+v", q.Validation)
	}
	if q.Validation.Max == nil || *q.Validation.Max != 120 {
		t.Fatalf("expected max 120, got %+v", q.Validation)
	}
}

func TestImportEnumBecomesSelect(t *testing.T) {
	form := importForm(t)
	q := questionByLabel(t, form, "Plan")

	if q.Type != forms.QuestionTypeSelect {
		t.Fatalf("expected select type, got %q", q.Type)
	}
	if len(q.Options) != 2 {
		t.Fatalf("expected 2 options, got %v", q.Options)
	}
	if q.Options[0].Value != "free" || q.Options[1].Value != "pro" {
		t.Fatalf("unexpected option values %v", q.Options)
	}
}

func TestImportTextareaFormat(t *testing.T) {
	form := importForm(t)
	q := questionByLabel(t, form, "Bio")

	if q.Validation == nil || !q.Validation.IsParagraph {
		t.Fatal("expected textarea format to mark the question as paragraph")
	}
}

func TestImportUnknownOperation(t *testing.T) {
	doc, err := openapiimport.LoadDocumentFromData(context.Background(), []byte(signupSpec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := openapiimport.Import(doc, "missing"); err == nil {
		t.Fatal("expected unknown operation error")
	}
}
