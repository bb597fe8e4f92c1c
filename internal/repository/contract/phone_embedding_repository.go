package contract

import (
	"context"

	"mobiadvisor-be/internal/entity"
)

type ScoredPhoneEmbedding struct {
	Embedding  *entity.PhoneEmbedding
	Similarity float64
}

type PhoneEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.PhoneEmbedding) error
	DeleteAll(ctx context.Context) error
	DeleteByPhoneId(ctx context.Context, phoneId int) error
	Count(ctx context.Context) (int64, error)

	// SearchSimilarWithScore returns cosine-similarity matches above the
	// threshold, restricted to one embedding kind and optionally one brand.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, kind, brand string, limit int, threshold float64) ([]*ScoredPhoneEmbedding, error)
}
