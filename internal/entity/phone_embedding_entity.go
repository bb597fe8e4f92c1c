package entity

import (
	"time"

	"github.com/google/uuid"
)

// Embedding kinds partition the vector space so typo correction can search
// brands and models separately from full product vectors.
const (
	EmbeddingKindBrand   = "brand"
	EmbeddingKindModel   = "model"
	EmbeddingKindProduct = "product"
)

type PhoneEmbedding struct {
	Id        uuid.UUID
	Kind      string
	Value     string
	Brand     string
	PhoneId   *int
	Embedding []float32
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
