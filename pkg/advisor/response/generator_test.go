package response

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/pkg/llm"
)

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price int
		want  string
	}{
		{999, "999"},
		{1000, "1,000"},
		{17999, "17,999"},
		{79900, "79,900"},
		{125000, "1,25,000"},
		{1234567, "12,34,567"},
	}

	for _, tt := range tests {
		if got := formatPrice(tt.price); got != tt.want {
			t.Errorf("formatPrice(%d) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestFallbackSummary(t *testing.T) {
	phones := []*entity.Phone{
		{CompanyName: "Samsung", ModelName: "Galaxy A54", PriceInr: 38999},
		{CompanyName: "Xiaomi", ModelName: "Redmi Note 13", PriceInr: 17999},
	}

	got := FallbackSummary(phones)
	if !strings.Contains(got, "2 phones") {
		t.Errorf("summary should state the count:\n%s", got)
	}
	if !strings.Contains(got, "**Samsung Galaxy A54** - Rs 38,999") {
		t.Errorf("summary missing formatted entry:\n%s", got)
	}
}

func TestFallbackSummaryEmpty(t *testing.T) {
	if got := FallbackSummary(nil); !strings.Contains(got, "couldn't find") {
		t.Errorf("empty fallback = %q", got)
	}
}

func TestSummarizeDegradesToFallbackOnModelFailure(t *testing.T) {
	g := NewGenerator(&fakeLLM{err: errors.New("connection refused")}, logger.NewNopLogger())

	phones := []*entity.Phone{{CompanyName: "Samsung", ModelName: "Galaxy S23", PriceInr: 74999}}
	got := g.Summarize(context.Background(), "samsung flagship", phones, nil)

	if !strings.Contains(got, "Galaxy S23") {
		t.Errorf("fallback summary must still list the phones:\n%s", got)
	}
}

func TestCompareAnalysisRejectsNonJSON(t *testing.T) {
	g := NewGenerator(&fakeLLM{response: "sorry, no json today"}, logger.NewNopLogger())

	_, err := g.CompareAnalysis(context.Background(), []*entity.Phone{
		{CompanyName: "Samsung", ModelName: "Galaxy S23"},
		{CompanyName: "Apple", ModelName: "iPhone 15"},
	})
	if err == nil {
		t.Fatal("expected an error for a json-free response")
	}
	if !strings.Contains(err.Error(), "invalid_response") {
		t.Errorf("error should be classifiable as invalid_response, got %q", err.Error())
	}
}

func TestPhoneBlocksGroundsEverySpec(t *testing.T) {
	blocks := phoneBlocks([]*entity.Phone{{
		CompanyName:   "Samsung",
		ModelName:     "Galaxy A54",
		PriceInr:      38999,
		RamGb:         8,
		MemoryGb:      128,
		BackCameraMp:  50,
		FrontCameraMp: 32,
		BatteryMah:    5000,
		ScreenSize:    6.4,
		UserRating:    4.2,
	}})

	for _, want := range []string{
		"Phone 1: Samsung Galaxy A54",
		"Rs 38,999",
		"8GB | Storage: 128GB",
		"50MP rear, 32MP front",
		"5000mAh",
		"6.4 inches",
		"4.2/5",
	} {
		if !strings.Contains(blocks, want) {
			t.Errorf("phone block missing %q:\n%s", want, blocks)
		}
	}
}
