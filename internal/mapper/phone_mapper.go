package mapper

import (
	"time"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/model"
)

type PhoneMapper struct{}

func NewPhoneMapper() *PhoneMapper {
	return &PhoneMapper{}
}

func (m *PhoneMapper) ToEntity(e *model.Phone) *entity.Phone {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Phone{
		Id:                e.Id,
		CompanyName:       e.CompanyName,
		ModelName:         e.ModelName,
		Processor:         e.Processor,
		LaunchedYear:      e.LaunchedYear,
		UserRating:        e.UserRating,
		UserReview:        e.UserReview,
		CameraRating:      e.CameraRating,
		BatteryRating:     e.BatteryRating,
		DesignRating:      e.DesignRating,
		DisplayRating:     e.DisplayRating,
		PerformanceRating: e.PerformanceRating,
		MemoryGb:          e.MemoryGb,
		WeightG:           e.WeightG,
		RamGb:             e.RamGb,
		FrontCameraMp:     e.FrontCameraMp,
		BackCameraMp:      e.BackCameraMp,
		BatteryMah:        e.BatteryMah,
		PriceInr:          e.PriceInr,
		ScreenSize:        e.ScreenSize,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *PhoneMapper) ToModel(e *entity.Phone) *model.Phone {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Phone{
		Id:                e.Id,
		CompanyName:       e.CompanyName,
		ModelName:         e.ModelName,
		Processor:         e.Processor,
		LaunchedYear:      e.LaunchedYear,
		UserRating:        e.UserRating,
		UserReview:        e.UserReview,
		CameraRating:      e.CameraRating,
		BatteryRating:     e.BatteryRating,
		DesignRating:      e.DesignRating,
		DisplayRating:     e.DisplayRating,
		PerformanceRating: e.PerformanceRating,
		MemoryGb:          e.MemoryGb,
		WeightG:           e.WeightG,
		RamGb:             e.RamGb,
		FrontCameraMp:     e.FrontCameraMp,
		BackCameraMp:      e.BackCameraMp,
		BatteryMah:        e.BatteryMah,
		PriceInr:          e.PriceInr,
		ScreenSize:        e.ScreenSize,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}
