package intent

import (
	"testing"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/pkg/store"
)

func TestIsFollowup(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "tell me more", query: "Tell me more about the first one", want: true},
		{name: "ordinal reference", query: "what about the second one?", want: true},
		{name: "compare them", query: "can you compare them?", want: true},
		{name: "fresh search", query: "best samsung phone under 20k", want: false},
		{name: "empty", query: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFollowup(tt.query); got != tt.want {
				t.Errorf("IsFollowup(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestIsBestQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "which is best", query: "which is best?", want: true},
		{name: "recommendation", query: "what's your recommendation", want: true},
		{name: "which should i buy", query: "Which should I buy?", want: true},
		{name: "plain search", query: "phones with good camera", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBestQuery(tt.query); got != tt.want {
				t.Errorf("IsBestQuery(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestPhonesFromHistory(t *testing.T) {
	older := []*entity.Phone{{Id: 1, ModelName: "galaxy s23"}}
	newer := []*entity.Phone{{Id: 2, ModelName: "iphone 15"}, {Id: 3, ModelName: "pixel 8"}}

	history := []store.ConversationTurn{
		{Role: "user", Content: "samsung phones"},
		{Role: "assistant", Content: "here you go", Phones: older},
		{Role: "user", Content: "what about apple?"},
		{Role: "assistant", Content: "sure", Phones: newer},
		{Role: "user", Content: "which is best?"},
	}

	got := PhonesFromHistory(history)
	if len(got) != 2 || got[0].Id != 2 {
		t.Fatalf("expected the newest carrying turn's phones, got %v", got)
	}

	if got := PhonesFromHistory(nil); got != nil {
		t.Errorf("expected nil for empty history, got %v", got)
	}

	noPhones := []store.ConversationTurn{{Role: "user", Content: "hi"}}
	if got := PhonesFromHistory(noPhones); got != nil {
		t.Errorf("expected nil when no turn carries phones, got %v", got)
	}
}
