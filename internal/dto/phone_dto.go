package dto

import (
	"time"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/repository/contract"
)

type PhoneDTO struct {
	Id                int        `json:"id"`
	CompanyName       string     `json:"company_name"`
	ModelName         string     `json:"model_name"`
	Processor         string     `json:"processor,omitempty"`
	LaunchedYear      int        `json:"launched_year,omitempty"`
	UserRating        float64    `json:"user_rating"`
	UserReview        string     `json:"user_review,omitempty"`
	CameraRating      float64    `json:"camera_rating,omitempty"`
	BatteryRating     float64    `json:"battery_rating,omitempty"`
	DesignRating      float64    `json:"design_rating,omitempty"`
	DisplayRating     float64    `json:"display_rating,omitempty"`
	PerformanceRating float64    `json:"performance_rating,omitempty"`
	MemoryGb          int        `json:"memory_gb"`
	WeightG           float64    `json:"weight_g,omitempty"`
	RamGb             float64    `json:"ram_gb"`
	FrontCameraMp     float64    `json:"front_camera_mp"`
	BackCameraMp      float64    `json:"back_camera_mp"`
	BatteryMah        int        `json:"battery_mah"`
	PriceInr          int        `json:"price_inr"`
	ScreenSize        float64    `json:"screen_size"`
	CreatedAt         time.Time  `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

func NewPhoneDTO(p *entity.Phone) PhoneDTO {
	return PhoneDTO{
		Id:                p.Id,
		CompanyName:       p.CompanyName,
		ModelName:         p.ModelName,
		Processor:         p.Processor,
		LaunchedYear:      p.LaunchedYear,
		UserRating:        p.UserRating,
		UserReview:        p.UserReview,
		CameraRating:      p.CameraRating,
		BatteryRating:     p.BatteryRating,
		DesignRating:      p.DesignRating,
		DisplayRating:     p.DisplayRating,
		PerformanceRating: p.PerformanceRating,
		MemoryGb:          p.MemoryGb,
		WeightG:           p.WeightG,
		RamGb:             p.RamGb,
		FrontCameraMp:     p.FrontCameraMp,
		BackCameraMp:      p.BackCameraMp,
		BatteryMah:        p.BatteryMah,
		PriceInr:          p.PriceInr,
		ScreenSize:        p.ScreenSize,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func NewPhoneDTOs(phones []*entity.Phone) []PhoneDTO {
	out := make([]PhoneDTO, 0, len(phones))
	for _, p := range phones {
		out = append(out, NewPhoneDTO(p))
	}
	return out
}

func (d *PhoneDTO) ToEntity() *entity.Phone {
	return &entity.Phone{
		Id:                d.Id,
		CompanyName:       d.CompanyName,
		ModelName:         d.ModelName,
		Processor:         d.Processor,
		LaunchedYear:      d.LaunchedYear,
		UserRating:        d.UserRating,
		UserReview:        d.UserReview,
		CameraRating:      d.CameraRating,
		BatteryRating:     d.BatteryRating,
		DesignRating:      d.DesignRating,
		DisplayRating:     d.DisplayRating,
		PerformanceRating: d.PerformanceRating,
		MemoryGb:          d.MemoryGb,
		WeightG:           d.WeightG,
		RamGb:             d.RamGb,
		FrontCameraMp:     d.FrontCameraMp,
		BackCameraMp:      d.BackCameraMp,
		BatteryMah:        d.BatteryMah,
		PriceInr:          d.PriceInr,
		ScreenSize:        d.ScreenSize,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type ListPhonesRequest struct {
	Company    string   `query:"company"`
	MinPrice   *int     `query:"min_price"`
	MaxPrice   *int     `query:"max_price"`
	MinRam     *float64 `query:"min_ram"`
	MinBattery *int     `query:"min_battery"`
	MinCamera  *float64 `query:"min_camera"`
	MinStorage *int     `query:"min_storage"`
	SortBy     string   `query:"sort_by"`
	Order      string   `query:"order" validate:"omitempty,oneof=asc desc"`
	Limit      int      `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (r *ListPhonesRequest) ToFilters() *FiltersDTO {
	return &FiltersDTO{
		Company:    r.Company,
		MinPrice:   r.MinPrice,
		MaxPrice:   r.MaxPrice,
		MinRam:     r.MinRam,
		MinBattery: r.MinBattery,
		MinCamera:  r.MinCamera,
		MinStorage: r.MinStorage,
	}
}

type RangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FilterMetadataResponse struct {
	Price   RangeDTO `json:"price"`
	Ram     RangeDTO `json:"ram"`
	Battery RangeDTO `json:"battery"`
	Camera  RangeDTO `json:"camera"`
	Brands  []string `json:"brands"`
}

func NewFilterMetadataResponse(agg *contract.PhoneAggregates) *FilterMetadataResponse {
	return &FilterMetadataResponse{
		Price:   RangeDTO{Min: float64(agg.MinPrice), Max: float64(agg.MaxPrice)},
		Ram:     RangeDTO{Min: agg.MinRam, Max: agg.MaxRam},
		Battery: RangeDTO{Min: float64(agg.MinBattery), Max: float64(agg.MaxBattery)},
		Camera:  RangeDTO{Min: agg.MinCamera, Max: agg.MaxCamera},
		Brands:  agg.Brands,
	}
}
