package service

import (
	"context"
	"encoding/json"

	"mobiadvisor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IndexPhonePayload asks the indexer to (re)build embeddings for one phone.
type IndexPhonePayload struct {
	PhoneId int `json:"phone_id"`
}

type IPublisherService interface {
	PublishIndexPhone(ctx context.Context, phoneId int) error
}

type publisherService struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewPublisherService(publisher message.Publisher, topic string, log logger.ILogger) IPublisherService {
	return &publisherService{
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

func (s *publisherService) PublishIndexPhone(ctx context.Context, phoneId int) error {
	payload, err := json.Marshal(IndexPhonePayload{PhoneId: phoneId})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.logger.Error("publisher", "failed to publish index event", map[string]interface{}{
			"phone_id": phoneId,
			"error":    err.Error(),
		})
		return err
	}
	return nil
}
