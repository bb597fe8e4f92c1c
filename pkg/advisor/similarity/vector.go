package similarity

import (
	"context"
	"strings"

	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/pkg/embedding"
	"mobiadvisor-be/pkg/store"
)

const defaultVectorThreshold = 0.7

// VectorMatcher searches the pgvector-backed phone_embeddings index.
type VectorMatcher struct {
	embedder  embedding.EmbeddingProvider
	repo      contract.PhoneEmbeddingRepository
	threshold float64
	logger    logger.ILogger
}

func NewVectorMatcher(embedder embedding.EmbeddingProvider, repo contract.PhoneEmbeddingRepository, log logger.ILogger) *VectorMatcher {
	return &VectorMatcher{
		embedder:  embedder,
		repo:      repo,
		threshold: defaultVectorThreshold,
		logger:    log,
	}
}

func (m *VectorMatcher) FindSimilar(ctx context.Context, token, kind string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 5
	}

	resp, err := m.embedder.Generate(ctx, strings.ToLower(token), "retrieval_query")
	if err != nil {
		return nil, err
	}

	scored, err := m.repo.SearchSimilarWithScore(ctx, resp.Embedding.Values, kind, "", limit, m.threshold)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(scored))
	for _, s := range scored {
		matches = append(matches, Match{
			Value:   s.Embedding.Value,
			Brand:   s.Embedding.Brand,
			Score:   s.Similarity,
			PhoneId: s.Embedding.PhoneId,
		})
	}
	return matches, nil
}

func (m *VectorMatcher) SearchProducts(ctx context.Context, query string, filters *store.Filters, topK int) ([]int, error) {
	if topK <= 0 {
		topK = 5
	}

	resp, err := m.embedder.Generate(ctx, query, "retrieval_query")
	if err != nil {
		return nil, err
	}

	brand := ""
	if filters != nil {
		brand = strings.ToLower(filters.Company)
	}

	scored, err := m.repo.SearchSimilarWithScore(ctx, resp.Embedding.Values, KindProduct, brand, topK, 0)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(scored))
	for _, s := range scored {
		if s.Embedding.PhoneId != nil {
			ids = append(ids, *s.Embedding.PhoneId)
		}
	}
	return ids, nil
}
