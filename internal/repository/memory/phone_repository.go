// Package memory provides in-memory repository implementations used by
// tests and local fixtures.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/pkg/store"
)

// ErrPredicateUnsupported is returned for generated-predicate queries: the
// in-memory store has no SQL engine, so callers fall through to the next
// retrieval strategy.
var ErrPredicateUnsupported = errors.New("predicate queries require a sql backend")

type PhoneRepository struct {
	mu     sync.RWMutex
	phones []*entity.Phone
	nextId int
}

func NewPhoneRepository(seed ...*entity.Phone) *PhoneRepository {
	r := &PhoneRepository{nextId: 1}
	for _, p := range seed {
		c := *p
		if c.Id == 0 {
			c.Id = r.nextId
		}
		if c.Id >= r.nextId {
			r.nextId = c.Id + 1
		}
		r.phones = append(r.phones, &c)
	}
	return r
}

var _ contract.PhoneRepository = (*PhoneRepository)(nil)

func (r *PhoneRepository) snapshot() []*entity.Phone {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

func sortByRating(phones []*entity.Phone) {
	sort.SliceStable(phones, func(i, j int) bool {
		if phones[i].UserRating != phones[j].UserRating {
			return phones[i].UserRating > phones[j].UserRating
		}
		return phones[i].PriceInr < phones[j].PriceInr
	})
}

func capAt(phones []*entity.Phone, limit int) []*entity.Phone {
	if limit > 0 && len(phones) > limit {
		return phones[:limit]
	}
	return phones
}

func (r *PhoneRepository) GetById(ctx context.Context, id int) (*entity.Phone, error) {
	for _, p := range r.snapshot() {
		if p.Id == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PhoneRepository) FindByIds(ctx context.Context, ids []int) ([]*entity.Phone, error) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*entity.Phone
	for _, p := range r.snapshot() {
		if want[p.Id] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PhoneRepository) QueryByFilters(ctx context.Context, f *store.Filters, orderColumns []string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*entity.Phone
	for _, p := range r.snapshot() {
		if matchesLoose(p, f) {
			out = append(out, p)
		}
	}
	applyOrdering(out, orderColumns)
	return capAt(out, limit), nil
}

// matchesLoose mirrors the SQL implementation: brand is a substring match,
// not strict equality.
func matchesLoose(p *entity.Phone, f *store.Filters) bool {
	if f == nil {
		return true
	}
	if f.Company != "" && !strings.Contains(strings.ToLower(p.CompanyName), strings.ToLower(f.Company)) {
		return false
	}
	relaxed := f.Clone()
	relaxed.Company = ""
	return relaxed.Matches(p)
}

func applyOrdering(phones []*entity.Phone, orderColumns []string) {
	if len(orderColumns) == 0 {
		sortByRating(phones)
		return
	}
	key := func(p *entity.Phone, col string) float64 {
		switch {
		case strings.HasPrefix(col, "back_camera_mp"):
			return p.BackCameraMp
		case strings.HasPrefix(col, "battery_mah"):
			return float64(p.BatteryMah)
		case strings.HasPrefix(col, "ram_gb"):
			return p.RamGb
		case strings.HasPrefix(col, "performance_rating"):
			return p.PerformanceRating
		case strings.HasPrefix(col, "price_inr"):
			return float64(p.PriceInr)
		default:
			return p.UserRating
		}
	}
	sort.SliceStable(phones, func(i, j int) bool {
		for _, col := range orderColumns {
			desc := strings.Contains(strings.ToUpper(col), "DESC")
			a, b := key(phones[i], col), key(phones[j], col)
			if a == b {
				continue
			}
			if desc {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func (r *PhoneRepository) QueryByPredicate(ctx context.Context, predicate string) ([]*entity.Phone, error) {
	return nil, ErrPredicateUnsupported
}

func (r *PhoneRepository) SearchByModelSubstring(ctx context.Context, term string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 10
	}
	term = strings.ToLower(term)
	var out []*entity.Phone
	for _, p := range r.snapshot() {
		if strings.Contains(strings.ToLower(p.ModelName), term) {
			out = append(out, p)
		}
	}
	sortByRating(out)
	return capAt(out, limit), nil
}

func (r *PhoneRepository) SearchByBrandModel(ctx context.Context, brand, term string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 10
	}
	brand = strings.ToLower(brand)
	term = strings.ToLower(term)
	var out []*entity.Phone
	for _, p := range r.snapshot() {
		if strings.Contains(strings.ToLower(p.CompanyName), brand) &&
			strings.Contains(strings.ToLower(p.ModelName), term) {
			out = append(out, p)
		}
	}
	sortByRating(out)
	return capAt(out, limit), nil
}

func (r *PhoneRepository) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []*entity.Phone
	for _, p := range r.snapshot() {
		haystack := strings.ToLower(p.CompanyName + " " + p.ModelName + " " + p.Processor)
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if len(kw) < 3 {
				continue
			}
			if strings.Contains(haystack, kw) {
				out = append(out, p)
				break
			}
		}
	}
	sortByRating(out)
	return capAt(out, limit), nil
}

func (r *PhoneRepository) FindTopByBrand(ctx context.Context, brand string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 3
	}
	brand = strings.ToLower(brand)
	var out []*entity.Phone
	for _, p := range r.snapshot() {
		if strings.Contains(strings.ToLower(p.CompanyName), brand) {
			out = append(out, p)
		}
	}
	sortByRating(out)
	return capAt(out, limit), nil
}

func (r *PhoneRepository) ListBrands(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var brands []string
	for _, p := range r.snapshot() {
		if !seen[p.CompanyName] {
			seen[p.CompanyName] = true
			brands = append(brands, p.CompanyName)
		}
	}
	sort.Strings(brands)
	return brands, nil
}

func (r *PhoneRepository) ListModels(ctx context.Context, limit int) ([]*entity.Phone, error) {
	return capAt(r.snapshot(), limit), nil
}

func (r *PhoneRepository) Aggregates(ctx context.Context) (*contract.PhoneAggregates, error) {
	phones := r.snapshot()
	agg := &contract.PhoneAggregates{}
	for i, p := range phones {
		if i == 0 {
			agg.MinPrice, agg.MaxPrice = p.PriceInr, p.PriceInr
			agg.MinRam, agg.MaxRam = p.RamGb, p.RamGb
			agg.MinBattery, agg.MaxBattery = p.BatteryMah, p.BatteryMah
			agg.MinCamera, agg.MaxCamera = p.BackCameraMp, p.BackCameraMp
			continue
		}
		agg.MinPrice = min(agg.MinPrice, p.PriceInr)
		agg.MaxPrice = max(agg.MaxPrice, p.PriceInr)
		agg.MinRam = min(agg.MinRam, p.RamGb)
		agg.MaxRam = max(agg.MaxRam, p.RamGb)
		agg.MinBattery = min(agg.MinBattery, p.BatteryMah)
		agg.MaxBattery = max(agg.MaxBattery, p.BatteryMah)
		agg.MinCamera = min(agg.MinCamera, p.BackCameraMp)
		agg.MaxCamera = max(agg.MaxCamera, p.BackCameraMp)
	}
	brands, _ := r.ListBrands(ctx)
	agg.Brands = brands
	return agg, nil
}

func (r *PhoneRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.snapshot())), nil
}

func (r *PhoneRepository) CreateBulk(ctx context.Context, phones []*entity.Phone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range phones {
		if p.Id == 0 {
			p.Id = r.nextId
		}
		if p.Id >= r.nextId {
			r.nextId = p.Id + 1
		}
		c := *p
		r.phones = append(r.phones, &c)
	}
	return nil
}
