package implementation

import (
	"context"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/mapper"
	"mobiadvisor-be/internal/model"
	"mobiadvisor-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PhoneEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PhoneEmbeddingMapper
}

func NewPhoneEmbeddingRepository(db *gorm.DB) contract.PhoneEmbeddingRepository {
	return &PhoneEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewPhoneEmbeddingMapper(),
	}
}

func (r *PhoneEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.PhoneEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.PhoneEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PhoneEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.PhoneEmbedding{}).Error
}

func (r *PhoneEmbeddingRepositoryImpl) DeleteByPhoneId(ctx context.Context, phoneId int) error {
	return r.db.WithContext(ctx).Where("phone_id = ?", phoneId).Delete(&model.PhoneEmbedding{}).Error
}

func (r *PhoneEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PhoneEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore computes cosine similarity as 1 - (embedding <=> query)
// and filters below-threshold rows in SQL so callers only see usable matches.
func (r *PhoneEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, kind, brand string, limit int, threshold float64) ([]*contract.ScoredPhoneEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.PhoneEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("phone_embeddings").
		Select("phone_embeddings.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold)

	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if brand != "" {
		query = query.Where("brand = ?", brand)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredPhoneEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredPhoneEmbedding{
			Embedding:  r.mapper.ToEntity(&res.PhoneEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
