package service

import (
	"context"
	"time"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/pkg/store"

	gocache "github.com/patrickmn/go-cache"
)

const (
	filterMetadataCacheKey = "catalog:filter-metadata"
	filterMetadataTTL      = 5 * time.Minute
)

type ICatalogService interface {
	List(ctx context.Context, filters *store.Filters, sortBy, order string, limit int) ([]*entity.Phone, error)
	Get(ctx context.Context, id int) (*entity.Phone, error)
	FilterMetadata(ctx context.Context) (*contract.PhoneAggregates, error)
}

type catalogService struct {
	phones contract.PhoneRepository
	cache  *gocache.Cache
	logger logger.ILogger
}

func NewCatalogService(phones contract.PhoneRepository, log logger.ILogger) ICatalogService {
	return &catalogService{
		phones: phones,
		cache:  gocache.New(filterMetadataTTL, 10*time.Minute),
		logger: log,
	}
}

var listSortColumns = map[string]string{
	"price":   "price_inr",
	"rating":  "user_rating",
	"ram":     "ram_gb",
	"battery": "battery_mah",
	"camera":  "back_camera_mp",
	"year":    "launched_year",
}

func (s *catalogService) List(ctx context.Context, filters *store.Filters, sortBy, order string, limit int) ([]*entity.Phone, error) {
	column, ok := listSortColumns[sortBy]
	if !ok {
		column = "user_rating"
	}
	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}
	return s.phones.QueryByFilters(ctx, filters, []string{column + " " + direction}, limit)
}

func (s *catalogService) Get(ctx context.Context, id int) (*entity.Phone, error) {
	return s.phones.GetById(ctx, id)
}

// FilterMetadata is memoized: the catalog only changes on import, and the
// UI asks for ranges on every page load.
func (s *catalogService) FilterMetadata(ctx context.Context) (*contract.PhoneAggregates, error) {
	if cached, found := s.cache.Get(filterMetadataCacheKey); found {
		return cached.(*contract.PhoneAggregates), nil
	}

	agg, err := s.phones.Aggregates(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(filterMetadataCacheKey, agg, filterMetadataTTL)
	return agg, nil
}
