// Package similarity provides the two similarity strategies behind typo
// correction and semantic retrieval: a pgvector-backed matcher and an
// edit-distance fallback for when no embedding index is available. The
// strategy is chosen once at construction, not re-checked per call.
package similarity

import (
	"context"

	"mobiadvisor-be/pkg/store"
)

const (
	KindBrand   = "brand"
	KindModel   = "model"
	KindProduct = "product"
)

// Match is one candidate correction. PhoneId is set for model and product
// matches that map to a concrete catalog row.
type Match struct {
	Value   string
	Brand   string
	Score   float64
	PhoneId *int
}

// Matcher finds similar vocabulary tokens and performs semantic product
// search. Implementations only return matches above their own acceptance
// threshold; an empty result means "no usable match".
type Matcher interface {
	FindSimilar(ctx context.Context, token, kind string, limit int) ([]Match, error)

	// SearchProducts returns catalog ids for a free-text query, best first.
	// An empty slice (without error) tells the retrieval orchestrator to
	// fall through to the next strategy.
	SearchProducts(ctx context.Context, query string, filters *store.Filters, topK int) ([]int, error)
}
