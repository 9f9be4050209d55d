package forms_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

func TestNewQuestionDefaults(t *testing.T) {
	q := forms.NewQuestion()
	if q.ID == "" {
		t.Fatal("expected generated ID")
	}
	if q.Type != forms.QuestionTypeText {
		t.Fatalf("expected default text type, got %q", q.Type)
	}
	if q.Label != "" {
		t.Fatalf("expected empty label, got %q", q.Label)
	}
}

func TestQuestionCloneIsDeep(t *testing.T) {
	min := 2.0
	original := forms.Question{
		ID: "q1", Type: forms.QuestionTypeSelect, Label: "Color",
		Validation: &forms.ValidationRule{Required: true, Min: &min},
		Options:    []forms.Option{{Label: "Red", Value: "red"}},
	}

	clone := original.Clone()
	clone.Validation.Required = false
	*clone.Validation.Min = 99
	clone.Options[0].Value = "crimson"

	if !original.Validation.Required {
		t.Fatal("clone mutation leaked into original rule")
	}
	if *original.Validation.Min != 2.0 {
		t.Fatal("clone mutation leaked into original min pointer")
	}
	if original.Options[0].Value != "red" {
		t.Fatal("clone mutation leaked into original options")
	}
}

func TestFormCloneIsDeep(t *testing.T) {
	form := forms.NewForm("Survey")
	form.Questions = []forms.Question{
		{ID: "q1", Type: forms.QuestionTypeText, Label: "Name"},
	}

	clone := form.Clone()
	clone.Questions[0].Label = "Changed"

	if form.Questions[0].Label != "Name" {
		t.Fatal("clone mutation leaked into original question")
	}
	if diff := cmp.Diff(form.Questions[0].ID, clone.Questions[0].ID); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionEqual(t *testing.T) {
	base := forms.Question{
		ID: "q1", Type: forms.QuestionTypeText, Label: "Name",
		Validation: &forms.ValidationRule{Required: true},
	}

	same := base.Clone()
	if !base.Equal(same) {
		t.Fatal("clone should compare equal")
	}

	relabeled := base.Clone()
	relabeled.Label = "Full name"
	if base.Equal(relabeled) {
		t.Fatal("label change should break equality")
	}

	ruleChanged := base.Clone()
	ruleChanged.Validation.Required = false
	if base.Equal(ruleChanged) {
		t.Fatal("rule change should break equality")
	}

	noRule := base.Clone()
	noRule.Validation = nil
	if base.Equal(noRule) {
		t.Fatal("dropping the rule should break equality")
	}
}

func TestFormEqualIgnoresTimestamps(t *testing.T) {
	form := forms.NewForm("Survey")
	form.Questions = []forms.Question{
		{ID: "q1", Type: forms.QuestionTypeText, Label: "Name"},
	}

	other := form.Clone()
	other.UpdatedAt = form.UpdatedAt.Add(1)
	if !form.Equal(other) {
		t.Fatal("timestamps must not affect equality")
	}

	other.Title = "Renamed"
	if form.Equal(other) {
		t.Fatal("title change should break equality")
	}
}

func TestQuestionIndex(t *testing.T) {
	form := forms.Form{
		Questions: []forms.Question{
			{ID: "a"}, {ID: "b"}, {ID: "c"},
		},
	}
	if got := form.QuestionIndex("b"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := form.QuestionIndex("missing"); got != -1 {
		t.Fatalf("expected -1 for unknown ID, got %d", got)
	}
}
