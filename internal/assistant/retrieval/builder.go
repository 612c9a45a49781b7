// Package retrieval turns an intent and its entities into catalog queries and
// runs them, including the relaxed fallback query for empty searches.
package retrieval

import "shop-assistant/internal/models"

// Settings are the tunable bounds of every query.
type Settings struct {
	Limit                   int     `json:"limit"`
	SearchFallbackMinRating float64 `json:"search_fallback_min_rating"`
	RecommendMinRating      float64 `json:"recommend_min_rating"`
	GeneralMinRating        float64 `json:"general_min_rating"`
}

func DefaultSettings() Settings {
	return Settings{
		Limit:                   6,
		SearchFallbackMinRating: 4.5,
		RecommendMinRating:      4.5,
		GeneralMinRating:        4.7,
	}
}

// Plan is the query sequence for one message. A nil Primary means no query
// is issued; Fallback runs only when Primary returns nothing.
type Plan struct {
	Primary  *models.CatalogFilter
	Fallback *models.CatalogFilter
	// Category is the category the plan browses, if any.
	Category string
}

// Builder is immutable and safe for concurrent use.
type Builder struct {
	settings Settings
}

func NewBuilder(s Settings) *Builder {
	d := DefaultSettings()
	if s.Limit <= 0 {
		s.Limit = d.Limit
	}
	if s.SearchFallbackMinRating <= 0 {
		s.SearchFallbackMinRating = d.SearchFallbackMinRating
	}
	if s.RecommendMinRating <= 0 {
		s.RecommendMinRating = d.RecommendMinRating
	}
	if s.GeneralMinRating <= 0 {
		s.GeneralMinRating = d.GeneralMinRating
	}
	return &Builder{settings: s}
}

func (b *Builder) Settings() Settings {
	return b.settings
}

// Build composes the plan for intent. browseCategory is only read for
// models.IntentCategoryBrowse.
func (b *Builder) Build(intent models.Intent, e models.ExtractedEntities, browseCategory string) Plan {
	s := b.settings

	switch intent {
	case models.IntentFindOrSearch:
		f := models.CatalogFilter{
			Category:      e.Category,
			BrandContains: e.Brand,
			Terms:         append([]string(nil), e.Terms...),
			InStockOnly:   true,
			OrderBy:       models.OrderRatingDesc,
			Limit:         s.Limit,
		}
		if e.PriceRange != nil {
			f.PriceMin = copyFloat(e.PriceRange.Min)
			f.PriceMax = copyFloat(e.PriceRange.Max)
		}
		return Plan{
			Primary: &f,
			Fallback: &models.CatalogFilter{
				RatingMin:   models.Float(s.SearchFallbackMinRating),
				InStockOnly: true,
				OrderBy:     models.OrderRatingDesc,
				Limit:       s.Limit,
			},
			Category: e.Category,
		}

	case models.IntentPriceCompare:
		f := models.CatalogFilter{
			Category:    e.Category,
			InStockOnly: true,
			OrderBy:     models.OrderPriceAsc,
			Limit:       s.Limit,
		}
		if e.PriceRange != nil {
			f.PriceMax = copyFloat(e.PriceRange.Max)
		}
		return Plan{Primary: &f, Category: e.Category}

	case models.IntentRecommend:
		return Plan{
			Primary: &models.CatalogFilter{
				Category:    e.Category,
				RatingMin:   models.Float(s.RecommendMinRating),
				InStockOnly: true,
				OrderBy:     models.OrderRatingDesc,
				Limit:       s.Limit,
			},
			Category: e.Category,
		}

	case models.IntentCategoryBrowse:
		return Plan{
			Primary: &models.CatalogFilter{
				Category:    browseCategory,
				InStockOnly: true,
				OrderBy:     models.OrderRatingDesc,
				Limit:       s.Limit,
			},
			Category: browseCategory,
		}

	case models.IntentGreeting:
		return Plan{}

	default:
		return Plan{
			Primary: &models.CatalogFilter{
				RatingMin:   models.Float(s.GeneralMinRating),
				InStockOnly: true,
				OrderBy:     models.OrderDefault,
				Limit:       s.Limit,
			},
		}
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return models.Float(*v)
}
