package similarity

import (
	"context"
	"testing"

	"mobiadvisor-be/internal/pkg/logger"
)

func newTestMatcher() *EditDistanceMatcher {
	brands := []string{"samsung", "apple", "xiaomi", "oneplus"}
	models := []ModelEntry{
		{Name: "galaxy s23", Brand: "samsung", PhoneId: 1},
		{Name: "galaxy a54", Brand: "samsung", PhoneId: 2},
		{Name: "iphone 15", Brand: "apple", PhoneId: 3},
	}
	return NewEditDistanceMatcher(brands, models, logger.NewNopLogger())
}

func TestEditDistanceFindSimilarBrand(t *testing.T) {
	m := newTestMatcher()
	ctx := context.Background()

	tests := []struct {
		name      string
		token     string
		wantFirst string
		wantEmpty bool
	}{
		{name: "exact brand", token: "samsung", wantFirst: "samsung"},
		{name: "typo one edit", token: "samsng", wantFirst: "samsung"},
		{name: "substring boosted", token: "sam", wantFirst: "samsung"},
		{name: "case insensitive", token: "APPLE", wantFirst: "apple"},
		{name: "garbage below threshold", token: "zzzzzzzz", wantEmpty: true},
		{name: "empty token", token: "   ", wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := m.FindSimilar(ctx, tt.token, KindBrand, 5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantEmpty {
				if len(matches) != 0 {
					t.Fatalf("expected no matches, got %v", matches)
				}
				return
			}
			if len(matches) == 0 {
				t.Fatalf("expected matches for %q", tt.token)
			}
			if matches[0].Value != tt.wantFirst {
				t.Errorf("top match = %q, want %q", matches[0].Value, tt.wantFirst)
			}
		})
	}
}

func TestEditDistanceFindSimilarModel(t *testing.T) {
	m := newTestMatcher()

	matches, err := m.FindSimilar(context.Background(), "galxy s23", KindModel, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected a model match for one-edit typo")
	}
	top := matches[0]
	if top.Value != "galaxy s23" {
		t.Errorf("top match = %q, want %q", top.Value, "galaxy s23")
	}
	if top.Brand != "samsung" {
		t.Errorf("top match brand = %q, want samsung", top.Brand)
	}
	if top.PhoneId == nil || *top.PhoneId != 1 {
		t.Errorf("top match phone id = %v, want 1", top.PhoneId)
	}
	if top.Score < 0.6 {
		t.Errorf("top match score = %f, want >= 0.6", top.Score)
	}
}

func TestEditDistanceResultsSortedAndCapped(t *testing.T) {
	m := newTestMatcher()

	matches, err := m.FindSimilar(context.Background(), "galaxy", KindModel, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) > 1 {
		t.Fatalf("limit 1 returned %d matches", len(matches))
	}
}

func TestEditDistanceSearchProductsFallsThrough(t *testing.T) {
	m := newTestMatcher()

	ids, err := m.SearchProducts(context.Background(), "gaming phone under 20k", nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids != nil {
		t.Errorf("expected nil ids so retrieval falls through, got %v", ids)
	}
}
