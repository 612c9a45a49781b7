package catalog

import (
	"sort"
	"strings"

	"shop-assistant/internal/models"
)

// Matches evaluates f's predicates against p in memory. Text predicates are
// case-insensitive substring matches; category is a case-insensitive equality.
func Matches(p models.Product, f models.CatalogFilter) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.BrandContains != "" && !containsFold(p.Brand, f.BrandContains) {
		return false
	}
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.RatingMin != nil && p.Rating < *f.RatingMin {
		return false
	}
	if f.InStockOnly && !p.InStock() {
		return false
	}
	for _, term := range f.Terms {
		if !matchesTerm(p, term) {
			return false
		}
	}
	if f.Keyword != "" && !matchesKeyword(p, f.Keyword) {
		return false
	}
	return true
}

func matchesKeyword(p models.Product, kw string) bool {
	return matchesTerm(p, kw) || containsFold(p.Brand, kw) || containsFold(p.Category, kw)
}

func matchesTerm(p models.Product, term string) bool {
	if containsFold(p.Name, term) || containsFold(p.Description, term) {
		return true
	}
	for _, feature := range p.Features {
		if containsFold(feature, term) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SortProducts orders products in place by key. Ties, and OrderDefault,
// fall back to ascending id so results are stable across calls.
func SortProducts(products []models.Product, key models.OrderKey) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch key {
		case models.OrderRatingDesc:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		case models.OrderPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		}
		return a.ID < b.ID
	})
}
