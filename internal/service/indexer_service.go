package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IIndexerService interface {
	// Consume processes index-phone events until the context is cancelled.
	Consume(ctx context.Context) error

	// RebuildAll drops and rebuilds the whole similarity index: one product
	// vector per phone plus brand and model vocabulary vectors for typo
	// correction.
	RebuildAll(ctx context.Context) error
}

type indexerService struct {
	subscriber message.Subscriber
	topic      string
	phones     contract.PhoneRepository
	embeddings contract.PhoneEmbeddingRepository
	embedder   embedding.EmbeddingProvider
	logger     logger.ILogger
}

func NewIndexerService(
	subscriber message.Subscriber,
	topic string,
	phones contract.PhoneRepository,
	embeddings contract.PhoneEmbeddingRepository,
	embedder embedding.EmbeddingProvider,
	log logger.ILogger,
) IIndexerService {
	return &indexerService{
		subscriber: subscriber,
		topic:      topic,
		phones:     phones,
		embeddings: embeddings,
		embedder:   embedder,
		logger:     log,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		var payload IndexPhonePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.logger.Error("indexer", "malformed index event", map[string]interface{}{
				"error": err.Error(),
			})
			msg.Ack()
			continue
		}

		if err := s.indexPhone(ctx, payload.PhoneId); err != nil {
			s.logger.Error("indexer", "failed to index phone", map[string]interface{}{
				"phone_id": payload.PhoneId,
				"error":    err.Error(),
			})
		}
		msg.Ack()
	}
	return nil
}

func (s *indexerService) indexPhone(ctx context.Context, phoneId int) error {
	if s.embedder == nil {
		return fmt.Errorf("no embedding provider configured")
	}

	phone, err := s.phones.GetById(ctx, phoneId)
	if err != nil {
		return err
	}
	if phone == nil {
		return fmt.Errorf("phone %d not found", phoneId)
	}

	if err := s.embeddings.DeleteByPhoneId(ctx, phoneId); err != nil {
		return err
	}

	emb, err := s.buildProductEmbedding(ctx, phone)
	if err != nil {
		return err
	}
	return s.embeddings.CreateBulk(ctx, []*entity.PhoneEmbedding{emb})
}

func (s *indexerService) RebuildAll(ctx context.Context) error {
	if s.embedder == nil {
		return fmt.Errorf("no embedding provider configured")
	}

	if err := s.embeddings.DeleteAll(ctx); err != nil {
		return err
	}

	phones, err := s.phones.QueryByFilters(ctx, nil, nil, 100000)
	if err != nil {
		return err
	}

	var batch []*entity.PhoneEmbedding
	indexed, errors := 0, 0

	brands := make(map[string]bool)
	for _, phone := range phones {
		emb, err := s.buildProductEmbedding(ctx, phone)
		if err != nil {
			errors++
			continue
		}
		batch = append(batch, emb)
		indexed++

		// Model vocabulary vector for typo correction.
		modelEmb, err := s.buildVocabEmbedding(ctx, entity.EmbeddingKindModel, phone.ModelName, phone.CompanyName, &phone.Id)
		if err == nil {
			batch = append(batch, modelEmb)
		}

		brands[strings.ToLower(phone.CompanyName)] = true
	}

	for brand := range brands {
		brandEmb, err := s.buildVocabEmbedding(ctx, entity.EmbeddingKindBrand, brand, brand, nil)
		if err == nil {
			batch = append(batch, brandEmb)
		}
	}

	if err := s.embeddings.CreateBulk(ctx, batch); err != nil {
		return err
	}

	s.logger.Info("indexer", "index rebuilt", map[string]interface{}{
		"phones":  len(phones),
		"indexed": indexed,
		"errors":  errors,
		"vectors": len(batch),
	})
	return nil
}

func (s *indexerService) buildProductEmbedding(ctx context.Context, phone *entity.Phone) (*entity.PhoneEmbedding, error) {
	description := describePhone(phone)
	resp, err := s.embedder.Generate(ctx, description, "retrieval_document")
	if err != nil {
		return nil, err
	}

	id := phone.Id
	return &entity.PhoneEmbedding{
		Kind:      entity.EmbeddingKindProduct,
		Value:     strings.ToLower(phone.ModelName),
		Brand:     strings.ToLower(phone.CompanyName),
		PhoneId:   &id,
		Embedding: resp.Embedding.Values,
		Metadata: map[string]interface{}{
			"price":       phone.PriceInr,
			"description": description,
		},
	}, nil
}

func (s *indexerService) buildVocabEmbedding(ctx context.Context, kind, value, brand string, phoneId *int) (*entity.PhoneEmbedding, error) {
	resp, err := s.embedder.Generate(ctx, strings.ToLower(value), "retrieval_document")
	if err != nil {
		return nil, err
	}
	return &entity.PhoneEmbedding{
		Kind:      kind,
		Value:     strings.ToLower(value),
		Brand:     strings.ToLower(brand),
		PhoneId:   phoneId,
		Embedding: resp.Embedding.Values,
	}, nil
}

// describePhone builds the rich text that gets embedded per phone. Feature
// words make tier/camera/battery/gaming queries land near the right rows.
func describePhone(p *entity.Phone) string {
	var features []string

	switch {
	case p.PriceInr < 15000:
		features = append(features, "budget affordable cheap economical")
	case p.PriceInr < 30000:
		features = append(features, "mid-range balanced value")
	case p.PriceInr < 50000:
		features = append(features, "upper mid-range premium features")
	default:
		features = append(features, "flagship premium high-end")
	}

	if p.BackCameraMp >= 100 {
		features = append(features, "excellent camera photography flagship camera")
	} else if p.BackCameraMp >= 50 {
		features = append(features, "good camera photography")
	}

	if p.BatteryMah >= 5000 {
		features = append(features, "long battery life all-day battery")
	}

	if p.RamGb >= 8 {
		features = append(features, "gaming smooth performance multitasking")
	}

	processor := p.Processor
	if processor == "" {
		processor = "Unknown"
	}

	return strings.TrimSpace(fmt.Sprintf(`%s %s %dgb.
Price Rs %d. %gGB RAM, %dGB storage.
%gMP rear camera, %gMP front camera.
%dmAh battery. %g inch display.
Processor: %s.
Rating: %g/5.
Features: %s.`,
		p.CompanyName, p.ModelName, p.MemoryGb,
		p.PriceInr, p.RamGb, p.MemoryGb,
		p.BackCameraMp, p.FrontCameraMp,
		p.BatteryMah, p.ScreenSize,
		processor,
		p.UserRating,
		strings.Join(features, " ")))
}
