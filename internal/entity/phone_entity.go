package entity

import "time"

type Phone struct {
	Id                int
	CompanyName       string
	ModelName         string
	Processor         string
	LaunchedYear      int
	UserRating        float64
	UserReview        string
	CameraRating      float64
	BatteryRating     float64
	DesignRating      float64
	DisplayRating     float64
	PerformanceRating float64
	MemoryGb          int
	WeightG           float64
	RamGb             float64
	FrontCameraMp     float64
	BackCameraMp      float64
	BatteryMah        int
	PriceInr          int
	ScreenSize        float64
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

func (p *Phone) FullName() string {
	return p.CompanyName + " " + p.ModelName
}
