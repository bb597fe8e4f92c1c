package correction

import (
	"context"
	"errors"
	"testing"

	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/pkg/advisor/intent"
	"mobiadvisor-be/pkg/advisor/similarity"
	"mobiadvisor-be/pkg/store"
)

type fakeMatcher struct {
	matches map[string][]similarity.Match
	err     error
}

func (f *fakeMatcher) FindSimilar(ctx context.Context, token, kind string, limit int) ([]similarity.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches[kind+":"+token], nil
}

func (f *fakeMatcher) SearchProducts(ctx context.Context, query string, filters *store.Filters, topK int) ([]int, error) {
	return nil, nil
}

func TestCorrectFixesBrandAndModelTypos(t *testing.T) {
	matcher := &fakeMatcher{matches: map[string][]similarity.Match{
		"brand:samsng": {{Value: "samsung", Score: 0.86}},
		"model:galxy":  {{Value: "galaxy s23", Brand: "samsung", Score: 0.8}},
	}}
	c := NewCorrector(matcher, nil, logger.NewNopLogger())

	in := &intent.Intent{
		Task:           intent.TaskQuery,
		ComparisonType: intent.ComparisonSingle,
		Entities: intent.Entities{
			Companies: []string{"samsng"},
			Models:    []string{"galxy"},
		},
	}

	out := c.Correct(context.Background(), in)

	if out.Entities.Companies[0] != "samsung" {
		t.Errorf("company = %q, want samsung", out.Entities.Companies[0])
	}
	if out.Entities.Models[0] != "galaxy s23" {
		t.Errorf("model = %q, want galaxy s23", out.Entities.Models[0])
	}
	// Original intent must stay untouched.
	if in.Entities.Companies[0] != "samsng" || in.Entities.Models[0] != "galxy" {
		t.Errorf("input intent was mutated: %+v", in.Entities)
	}
}

func TestCorrectAliasWinsOverFuzzyMatch(t *testing.T) {
	matcher := &fakeMatcher{matches: map[string][]similarity.Match{
		"model:s23": {{Value: "galaxy s23 ultra", Score: 0.9}},
	}}
	c := NewCorrector(matcher, nil, logger.NewNopLogger())

	in := &intent.Intent{
		Entities: intent.Entities{Models: []string{"s23"}},
	}

	out := c.Correct(context.Background(), in)
	if out.Entities.Models[0] != "galaxy s23" {
		t.Errorf("model = %q, want alias result galaxy s23", out.Entities.Models[0])
	}
}

func TestCorrectKeepsTokenWhenNoMatch(t *testing.T) {
	c := NewCorrector(&fakeMatcher{}, nil, logger.NewNopLogger())

	in := &intent.Intent{
		Entities: intent.Entities{Companies: []string{"nokia"}},
	}

	out := c.Correct(context.Background(), in)
	if out.Entities.Companies[0] != "nokia" {
		t.Errorf("company = %q, want unchanged nokia", out.Entities.Companies[0])
	}
}

func TestCorrectKeepsTokenOnLookupError(t *testing.T) {
	c := NewCorrector(&fakeMatcher{err: errors.New("index down")}, nil, logger.NewNopLogger())

	in := &intent.Intent{
		Entities: intent.Entities{Companies: []string{"samsung"}},
	}

	out := c.Correct(context.Background(), in)
	if out.Entities.Companies[0] != "samsung" {
		t.Errorf("company = %q, want unchanged samsung", out.Entities.Companies[0])
	}
}
