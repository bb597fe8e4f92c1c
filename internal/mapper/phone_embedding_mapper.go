package mapper

import (
	"encoding/json"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type PhoneEmbeddingMapper struct{}

func NewPhoneEmbeddingMapper() *PhoneEmbeddingMapper {
	return &PhoneEmbeddingMapper{}
}

func (m *PhoneEmbeddingMapper) ToEntity(e *model.PhoneEmbedding) *entity.PhoneEmbedding {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.PhoneEmbedding{
		Id:        e.Id,
		Kind:      e.Kind,
		Value:     e.Value,
		Brand:     e.Brand,
		PhoneId:   e.PhoneId,
		Embedding: e.Embedding.Slice(),
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
	}
}

func (m *PhoneEmbeddingMapper) ToModel(e *entity.PhoneEmbedding) *model.PhoneEmbedding {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err == nil {
			metadata = raw
		}
	}

	return &model.PhoneEmbedding{
		Id:        e.Id,
		Kind:      e.Kind,
		Value:     e.Value,
		Brand:     e.Brand,
		PhoneId:   e.PhoneId,
		Embedding: pgvector.NewVector(e.Embedding),
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
	}
}
