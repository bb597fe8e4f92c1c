package model

import "time"

type Phone struct {
	Id                int    `gorm:"primaryKey;autoIncrement"`
	CompanyName       string `gorm:"size:100;index"`
	ModelName         string `gorm:"size:200;index"`
	Processor         string `gorm:"size:200"`
	LaunchedYear      int
	UserRating        float64 `gorm:"index"`
	UserReview        string  `gorm:"type:text"`
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
	PriceInr          int `gorm:"index"`
	ScreenSize        float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Phone) TableName() string {
	return "phones"
}
