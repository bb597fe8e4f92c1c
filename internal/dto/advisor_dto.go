package dto

import (
	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/pkg/store"
)

type FiltersDTO struct {
	Company    string   `json:"company,omitempty"`
	MinPrice   *int     `json:"min_price,omitempty"`
	MaxPrice   *int     `json:"max_price,omitempty"`
	MinRam     *float64 `json:"min_ram,omitempty"`
	MinBattery *int     `json:"min_battery,omitempty"`
	MinCamera  *float64 `json:"min_camera,omitempty"`
	MinStorage *int     `json:"min_storage,omitempty"`
}

func (f *FiltersDTO) ToFilters() *store.Filters {
	if f == nil {
		return &store.Filters{}
	}
	return &store.Filters{
		Company:    f.Company,
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
		MinRam:     f.MinRam,
		MinBattery: f.MinBattery,
		MinCamera:  f.MinCamera,
		MinStorage: f.MinStorage,
	}
}

type ConversationTurnDTO struct {
	Role    string     `json:"role" validate:"required,oneof=user assistant"`
	Content string     `json:"content"`
	Phones  []PhoneDTO `json:"phones,omitempty"`
}

type ChatRequest struct {
	Query   string                `json:"query" validate:"required,max=1000"`
	Filters *FiltersDTO           `json:"filters,omitempty"`
	History []ConversationTurnDTO `json:"history,omitempty" validate:"max=10,dive"`
}

func (r *ChatRequest) ToHistory() []store.ConversationTurn {
	history := make([]store.ConversationTurn, 0, len(r.History))
	for _, turn := range r.History {
		phones := make([]*entity.Phone, 0, len(turn.Phones))
		for i := range turn.Phones {
			phones = append(phones, turn.Phones[i].ToEntity())
		}
		history = append(history, store.ConversationTurn{
			Role:    turn.Role,
			Content: turn.Content,
			Phones:  phones,
		})
	}
	return history
}

type ChatResponse struct {
	Message string     `json:"message"`
	Phones  []PhoneDTO `json:"phones"`
	Warning string     `json:"warning,omitempty"`
	Error   string     `json:"error,omitempty"`
}

func NewChatResponse(res *store.Response) *ChatResponse {
	return &ChatResponse{
		Message: res.Message,
		Phones:  NewPhoneDTOs(res.Phones),
		Warning: res.Warning,
		Error:   res.Error,
	}
}

type CompareRequest struct {
	PhoneIds []int `json:"phone_ids" validate:"required,min=2,max=4"`
}

type CompareResponse struct {
	Analysis *store.CategoryAnalysis `json:"analysis"`
}
