package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type PhoneEmbedding struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind      string    `gorm:"size:20;index"`
	Value     string    `gorm:"size:200"`
	Brand     string    `gorm:"size:100;index"`
	PhoneId   *int      `gorm:"index"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	Metadata  datatypes.JSON
	CreatedAt time.Time
}

func (PhoneEmbedding) TableName() string {
	return "phone_embeddings"
}
