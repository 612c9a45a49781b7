// Package catalog defines the narrow ports the assistant uses to read the
// product catalog, plus backend-independent helpers built on them.
package catalog

import (
	"context"
	"errors"
	"sort"

	"shop-assistant/internal/models"
)

var ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")

// Querier runs a declarative filter. Implementations honour every predicate
// of models.CatalogFilter, its ordering and its limit (0 means unbounded).
type Querier interface {
	Query(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error)
}

// Browser exposes the catalog's navigation lookups.
type Browser interface {
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
	Product(ctx context.Context, id int64) (*models.Product, error)
}

// Store is a full catalog backend.
type Store interface {
	Querier
	Browser
}

// FeaturedMinRating and FeaturedLimit define the featured shelf.
const (
	FeaturedMinRating = 4.5
	FeaturedLimit     = 8
)

// Featured returns the best-rated in-stock products with rating >= 4.5.
func Featured(ctx context.Context, q Querier) ([]models.Product, error) {
	return q.Query(ctx, models.CatalogFilter{
		RatingMin:   models.Float(FeaturedMinRating),
		InStockOnly: true,
		OrderBy:     models.OrderRatingDesc,
		Limit:       FeaturedLimit,
	})
}

// Trending returns the best-rated in-stock product of every category, sorted
// by rating descending then id.
func Trending(ctx context.Context, s Store) ([]models.Product, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(categories))
	for _, c := range categories {
		top, err := s.Query(ctx, models.CatalogFilter{
			Category:    c,
			InStockOnly: true,
			OrderBy:     models.OrderRatingDesc,
			Limit:       1,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, top...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}
