package contract

import (
	"context"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/pkg/store"
)

// PhoneAggregates describes the spread of the catalog, used by the UI to
// build its filter controls.
type PhoneAggregates struct {
	MinPrice   int
	MaxPrice   int
	MinRam     float64
	MaxRam     float64
	MinBattery int
	MaxBattery int
	MinCamera  float64
	MaxCamera  float64
	Brands     []string
}

type PhoneRepository interface {
	GetById(ctx context.Context, id int) (*entity.Phone, error)
	FindByIds(ctx context.Context, ids []int) ([]*entity.Phone, error)

	// QueryByFilters applies the numeric bounds and brand constraint,
	// ordered by the given columns (defaults to user_rating DESC, price_inr ASC).
	// Results are capped at limit (50 when limit <= 0).
	QueryByFilters(ctx context.Context, f *store.Filters, orderColumns []string, limit int) ([]*entity.Phone, error)

	// QueryByPredicate executes a read-only SELECT over the phones table.
	// Anything that is not a single SELECT statement is rejected.
	QueryByPredicate(ctx context.Context, predicate string) ([]*entity.Phone, error)

	SearchByModelSubstring(ctx context.Context, term string, limit int) ([]*entity.Phone, error)
	SearchByBrandModel(ctx context.Context, brand, term string, limit int) ([]*entity.Phone, error)
	SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*entity.Phone, error)
	FindTopByBrand(ctx context.Context, brand string, limit int) ([]*entity.Phone, error)

	ListBrands(ctx context.Context) ([]string, error)
	ListModels(ctx context.Context, limit int) ([]*entity.Phone, error)
	Aggregates(ctx context.Context) (*PhoneAggregates, error)
	Count(ctx context.Context) (int64, error)

	CreateBulk(ctx context.Context, phones []*entity.Phone) error
}
