package recovery

import (
	"context"
	"testing"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/memory"
)

func TestExtractFilters(t *testing.T) {
	intp := func(v int) *int { return &v }

	tests := []struct {
		name        string
		query       string
		wantCompany string
		wantMin     *int
		wantMax     *int
	}{
		{
			name:        "shorthand price with direction",
			query:       "best samsung phone under 20k",
			wantCompany: "samsung",
			wantMax:     intp(20000),
		},
		{
			name:    "plain price above",
			query:   "phones above 30000",
			wantMin: intp(30000),
		},
		{
			name:    "no direction gets a window",
			query:   "phone around 25k",
			wantMin: intp(15000),
			wantMax: intp(35000),
		},
		{
			name:    "small figure window clamps at zero",
			query:   "something for 5k",
			wantMin: intp(0),
			wantMax: intp(15000),
		},
		{
			name:        "brand only",
			query:       "any good xiaomi?",
			wantCompany: "xiaomi",
		},
		{
			name:  "nothing extractable",
			query: "something nice please",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFilters(tt.query)

			if got.Company != tt.wantCompany {
				t.Errorf("company = %q, want %q", got.Company, tt.wantCompany)
			}
			checkBound(t, "min price", got.MinPrice, tt.wantMin)
			checkBound(t, "max price", got.MaxPrice, tt.wantMax)
		})
	}
}

func checkBound(t *testing.T, label string, got, want *int) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s = %d, want unset", label, *got)
	case want != nil && got == nil:
		t.Errorf("%s unset, want %d", label, *want)
	case want != nil && got != nil && *got != *want:
		t.Errorf("%s = %d, want %d", label, *got, *want)
	}
}

func TestRecoverReturnsMatchingPhones(t *testing.T) {
	repo := memory.NewPhoneRepository(
		&entity.Phone{Id: 1, CompanyName: "Samsung", ModelName: "Galaxy A14", UserRating: 4.0, PriceInr: 12999},
		&entity.Phone{Id: 2, CompanyName: "Samsung", ModelName: "Galaxy S23", UserRating: 4.5, PriceInr: 74999},
		&entity.Phone{Id: 3, CompanyName: "Apple", ModelName: "iPhone 15", UserRating: 4.7, PriceInr: 79900},
	)
	r := NewRecoverer(repo, logger.NewNopLogger())

	phones, err := r.Recover(context.Background(), "best samsung phone under 20k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(phones) != 1 || phones[0].Id != 1 {
		t.Fatalf("expected only the cheap samsung, got %v", phones)
	}
}

func TestRecoverFallsBackToKeywordSearch(t *testing.T) {
	repo := memory.NewPhoneRepository(
		&entity.Phone{Id: 1, CompanyName: "Apple", ModelName: "iPhone 15", UserRating: 4.7, PriceInr: 79900},
		&entity.Phone{Id: 2, CompanyName: "Samsung", ModelName: "Galaxy S23", UserRating: 4.5, PriceInr: 74999},
	)
	r := NewRecoverer(repo, logger.NewNopLogger())

	// "under 5k" matches no catalog row, but "iphone" names a model. The
	// keyword pass must run before the wide-open retry, which would have
	// returned both phones.
	phones, err := r.Recover(context.Background(), "iphone under 5k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(phones) != 1 || phones[0].Id != 1 {
		t.Fatalf("expected only the iphone via keyword search, got %v", phones)
	}
}

func TestQueryKeywords(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"best iphone under 5k", []string{"best", "iphone", "under"}},
		{"Redmi, please!", []string{"redmi", "please"}},
		{"a 5g ok", nil},
	}

	for _, tt := range tests {
		got := queryKeywords(tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("queryKeywords(%q) = %v, want %v", tt.query, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("queryKeywords(%q) = %v, want %v", tt.query, got, tt.want)
				break
			}
		}
	}
}

func TestRecoverRetriesWideOpenWhenFiltersTooTight(t *testing.T) {
	repo := memory.NewPhoneRepository(
		&entity.Phone{Id: 1, CompanyName: "Apple", ModelName: "iPhone 15", UserRating: 4.7, PriceInr: 79900},
	)
	r := NewRecoverer(repo, logger.NewNopLogger())

	// Samsung under 10k matches nothing; the wide-open retry must still
	// hand the user something.
	phones, err := r.Recover(context.Background(), "samsung under 10k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(phones) != 1 {
		t.Fatalf("expected the wide-open retry to return the catalog, got %v", phones)
	}
}
