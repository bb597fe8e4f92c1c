package service

import (
	"context"
	"testing"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogListSortsByWhitelistedColumn(t *testing.T) {
	svc := NewCatalogService(seedRepo(), logger.NewNopLogger())

	phones, err := svc.List(context.Background(), &store.Filters{}, "price", "asc", 10)
	require.NoError(t, err)
	require.NotEmpty(t, phones)
	for i := 1; i < len(phones); i++ {
		assert.LessOrEqual(t, phones[i-1].PriceInr, phones[i].PriceInr)
	}
}

func TestCatalogListUnknownSortFallsBackToRating(t *testing.T) {
	svc := NewCatalogService(seedRepo(), logger.NewNopLogger())

	phones, err := svc.List(context.Background(), &store.Filters{}, "shoe_size", "", 10)
	require.NoError(t, err)
	require.NotEmpty(t, phones)
	for i := 1; i < len(phones); i++ {
		assert.GreaterOrEqual(t, phones[i-1].UserRating, phones[i].UserRating)
	}
}

func TestCatalogFilterMetadataIsMemoized(t *testing.T) {
	repo := seedRepo()
	svc := NewCatalogService(repo, logger.NewNopLogger())
	ctx := context.Background()

	first, err := svc.FilterMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17999, first.MinPrice)
	assert.Equal(t, 79900, first.MaxPrice)
	assert.Contains(t, first.Brands, "Samsung")

	// A catalog change within the TTL is not visible: the ranges are cached.
	require.NoError(t, repo.CreateBulk(ctx, []*entity.Phone{
		{CompanyName: "Nothing", ModelName: "Phone 2", PriceInr: 5000},
	}))

	second, err := svc.FilterMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.MinPrice, second.MinPrice)
}
