// Package store holds the request-scoped types shared by the advisor
// pipeline: caller filters, conversation turns and the final response.
package store

import (
	"strings"

	"mobiadvisor-be/internal/entity"
)

// Filters is a sparse set of inclusive numeric bounds plus an optional
// brand constraint. Nil pointer means the bound is absent.
type Filters struct {
	Company    string
	MinPrice   *int
	MaxPrice   *int
	MinRam     *float64
	MinBattery *int
	MinCamera  *float64
	MinStorage *int
}

// Clone returns a copy so the engine never mutates the caller's filters.
func (f *Filters) Clone() *Filters {
	if f == nil {
		return &Filters{}
	}
	c := *f
	return &c
}

func (f *Filters) IsEmpty() bool {
	return f == nil || (f.Company == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinRam == nil && f.MinBattery == nil && f.MinCamera == nil && f.MinStorage == nil)
}

// Matches reports whether a phone satisfies every supplied bound.
func (f *Filters) Matches(p *entity.Phone) bool {
	if f == nil || p == nil {
		return p != nil
	}
	if f.Company != "" && !strings.EqualFold(p.CompanyName, f.Company) {
		return false
	}
	if f.MinPrice != nil && p.PriceInr < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.PriceInr > *f.MaxPrice {
		return false
	}
	if f.MinRam != nil && p.RamGb < *f.MinRam {
		return false
	}
	if f.MinBattery != nil && p.BatteryMah < *f.MinBattery {
		return false
	}
	if f.MinCamera != nil && p.BackCameraMp < *f.MinCamera {
		return false
	}
	if f.MinStorage != nil && p.MemoryGb < *f.MinStorage {
		return false
	}
	return true
}

// ConversationTurn is one prior message. Assistant turns may carry the
// phones that were shown so follow-up queries can reuse them.
type ConversationTurn struct {
	Role    string
	Content string
	Phones  []*entity.Phone
}

// Response is the engine's only output. Phones is capped at 5 and
// deduplicated by (brand, model). Error is set only when both the primary
// pipeline and the keyword fallback failed.
type Response struct {
	Message string
	Phones  []*entity.Phone
	Warning string
	Error   string
}

// CategoryVerdict names a winner for one comparison category.
type CategoryVerdict struct {
	Winner    string `json:"winner"`
	Reasoning string `json:"reasoning"`
}

// CategoryAnalysis is the structured result of a multi-phone comparison.
type CategoryAnalysis struct {
	Overall     CategoryVerdict `json:"overall"`
	Gaming      CategoryVerdict `json:"gaming"`
	Photography CategoryVerdict `json:"photography"`
	Value       CategoryVerdict `json:"value"`
	DailyUse    CategoryVerdict `json:"dailyUse"`
	Summary     string          `json:"summary"`
}
