package prompt

import (
	"strings"
	"testing"
)

func TestRenderSubstitutesVariables(t *testing.T) {
	tmpl := &Template{
		Name:     "greeting",
		Version:  1,
		Required: []string{"name"},
		Text:     "Hello {name}, welcome to {place}!",
	}

	out, err := tmpl.Render(map[string]string{"name": "Asha", "place": "the store"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello Asha, welcome to the store!" {
		t.Errorf("rendered = %q", out)
	}
}

func TestRenderFailsOnMissingRequiredVariable(t *testing.T) {
	tmpl := &Template{
		Name:     "greeting",
		Version:  2,
		Required: []string{"name"},
		Text:     "Hello {name}!",
	}

	_, err := tmpl.Render(map[string]string{})
	if err == nil {
		t.Fatal("expected an error for the missing variable")
	}
	if !strings.Contains(err.Error(), "name") || !strings.Contains(err.Error(), "v2") {
		t.Errorf("error should name the variable and version, got %q", err.Error())
	}
}

func TestRegistryHoldsAllPipelineTemplates(t *testing.T) {
	for _, name := range []string{"intent", "predicate", "summary", "general_qa", "compare"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("template %q missing from registry", name)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("unknown template must not resolve")
	}
}

func TestSummaryTemplateKeepsGroundingRules(t *testing.T) {
	// The grounding boundary lives in the prompt text; a reworded template
	// silently weakens it, so pin the key clauses.
	for _, clause := range []string{
		"ONLY use data from PHONE DATA",
		"never invent",
		"{phone_data}",
		"{query}",
	} {
		if !strings.Contains(Summary.Text, clause) {
			t.Errorf("summary template lost clause %q", clause)
		}
	}
}

func TestPredicateTemplateIsSelectOnly(t *testing.T) {
	if !strings.Contains(Predicate.Text, "ONLY generate SELECT statements") {
		t.Error("predicate template must demand SELECT-only output")
	}
}
