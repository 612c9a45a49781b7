package memory

import (
	"context"
	"sync"
	"testing"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/catalog/catalogtest"
	"shop-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ==========================
// Query predicates
// ==========================

func TestStore_Query(t *testing.T) {
	s := New(catalogtest.Products())
	ctx := context.Background()

	tests := []struct {
		name     string
		filter   models.CatalogFilter
		expected []int64
	}{
		{
			name:     "no predicates, default order",
			filter:   models.CatalogFilter{Limit: 3},
			expected: []int64{1, 2, 3},
		},
		{
			name:     "category equality ignores case",
			filter:   models.CatalogFilter{Category: "audio"},
			expected: []int64{5, 6},
		},
		{
			name:     "brand substring",
			filter:   models.CatalogFilter{BrandContains: "sam", OrderBy: models.OrderPriceAsc},
			expected: []int64{2, 12},
		},
		{
			name:     "price bounds inclusive",
			filter:   models.CatalogFilter{PriceMin: models.Float(399), PriceMax: models.Float(499)},
			expected: []int64{5, 7, 10},
		},
		{
			name:     "in stock only drops zero stock",
			filter:   models.CatalogFilter{Category: "Audio", InStockOnly: true},
			expected: []int64{5},
		},
		{
			name:     "rating floor with rating order and id tie-break",
			filter:   models.CatalogFilter{RatingMin: models.Float(4.8), OrderBy: models.OrderRatingDesc},
			expected: []int64{3, 9, 1, 7},
		},
		{
			name:     "terms are conjunctive",
			filter:   models.CatalogFilter{Terms: []string{"wireless", "noise"}},
			expected: []int64{5, 6},
		},
		{
			name:     "term matches features",
			filter:   models.CatalogFilter{Terms: []string{"thunderbolt"}},
			expected: []int64{4},
		},
		{
			name:     "term matches description case-insensitively",
			filter:   models.CatalogFilter{Terms: []string{"MIRRORLESS"}},
			expected: []int64{9},
		},
		{
			name:     "keyword also matches brand",
			filter:   models.CatalogFilter{Keyword: "APPLE"},
			expected: []int64{1, 3, 10},
		},
		{
			name:     "keyword also matches category",
			filter:   models.CatalogFilter{Keyword: "smart home", InStockOnly: true},
			expected: []int64{11},
		},
		{
			name:     "no match",
			filter:   models.CatalogFilter{Terms: []string{"refrigerator"}},
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Query(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestStore_QueryCancelledContext(t *testing.T) {
	s := New(catalogtest.Products())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Query(ctx, models.CatalogFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

// ==========================
// Browser
// ==========================

func TestStore_Browse(t *testing.T) {
	s := New(catalogtest.Products())
	ctx := context.Background()

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Audio", "Cameras", "Computers", "Electronics", "Gaming", "Smart Home", "Wearables"}, cats)

	brands, err := s.Brands(ctx)
	require.NoError(t, err)
	assert.Contains(t, brands, "Apple")
	assert.Len(t, brands, 8)

	p, err := s.Product(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "PlayStation 5", p.Name)

	_, err = s.Product(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	products := catalogtest.Products()
	s := New(products)

	products[0].Name = "mutated"
	products[0].Features[0] = "mutated"

	p, err := s.Product(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15 Pro", p.Name)
	assert.Equal(t, "5G", p.Features[0])
}

func TestStore_ConcurrentReplaceAndQuery(t *testing.T) {
	s := New(catalogtest.Products())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.Query(ctx, models.CatalogFilter{InStockOnly: true, OrderBy: models.OrderRatingDesc, Limit: 6})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			s.Replace(catalogtest.Products())
		}()
	}
	wg.Wait()
	assert.Equal(t, 12, s.Len())
}

func TestFeaturedAndTrending(t *testing.T) {
	s := New(catalogtest.Products())
	ctx := context.Background()

	featured, err := catalog.Featured(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 9, 1, 7, 5, 8, 2, 10}, ids(featured))

	trending, err := catalog.Trending(ctx, s)
	require.NoError(t, err)
	// best in-stock product per category, best rated first
	assert.Equal(t, []int64{3, 9, 1, 7, 5, 10, 11}, ids(trending))
}

func BenchmarkStore_Query(b *testing.B) {
	s := New(catalogtest.Products())
	ctx := context.Background()
	f := models.CatalogFilter{Terms: []string{"wireless"}, InStockOnly: true, OrderBy: models.OrderRatingDesc, Limit: 6}
	for i := 0; i < b.N; i++ {
		_, _ = s.Query(ctx, f)
	}
}
