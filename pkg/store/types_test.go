package store

import (
	"testing"

	"mobiadvisor-be/internal/entity"
)

func TestFiltersMatches(t *testing.T) {
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }

	phone := &entity.Phone{
		CompanyName: "Samsung",
		PriceInr:    38999,
		RamGb:       8,
		BatteryMah:  5000,
		BackCameraMp: 50,
		MemoryGb:    128,
	}

	tests := []struct {
		name    string
		filters *Filters
		want    bool
	}{
		{name: "nil filters", filters: nil, want: true},
		{name: "empty filters", filters: &Filters{}, want: true},
		{name: "brand case-insensitive", filters: &Filters{Company: "samsung"}, want: true},
		{name: "brand mismatch", filters: &Filters{Company: "apple"}, want: false},
		{name: "inside price band", filters: &Filters{MinPrice: intp(20000), MaxPrice: intp(40000)}, want: true},
		{name: "below min price", filters: &Filters{MinPrice: intp(40000)}, want: false},
		{name: "above max price", filters: &Filters{MaxPrice: intp(30000)}, want: false},
		{name: "boundary is inclusive", filters: &Filters{MaxPrice: intp(38999)}, want: true},
		{name: "ram bound", filters: &Filters{MinRam: floatp(12)}, want: false},
		{name: "battery bound", filters: &Filters{MinBattery: intp(4000)}, want: true},
		{name: "camera bound", filters: &Filters{MinCamera: floatp(100)}, want: false},
		{name: "storage bound", filters: &Filters{MinStorage: intp(256)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Matches(phone); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiltersCloneIsIndependent(t *testing.T) {
	price := 20000
	f := &Filters{Company: "samsung", MaxPrice: &price}

	c := f.Clone()
	c.Company = "apple"

	if f.Company != "samsung" {
		t.Error("clone must not share the company field")
	}

	var nilFilters *Filters
	if nilFilters.Clone() == nil {
		t.Error("cloning nil must return an empty filter set")
	}
}

func TestFiltersIsEmpty(t *testing.T) {
	if !(&Filters{}).IsEmpty() {
		t.Error("zero value should be empty")
	}
	var nilFilters *Filters
	if !nilFilters.IsEmpty() {
		t.Error("nil should be empty")
	}
	price := 1
	if (&Filters{MinPrice: &price}).IsEmpty() {
		t.Error("a set bound should not be empty")
	}
}
