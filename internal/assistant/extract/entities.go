package extract

import "shop-assistant/internal/models"

// Extractor bundles the configured parsers. It holds no mutable state and is
// safe for concurrent use.
type Extractor struct {
	price  *PriceParser
	brands *BrandMatcher
}

func NewExtractor(aroundFactor float64, brands []string) *Extractor {
	return &Extractor{
		price:  NewPriceParser(aroundFactor),
		brands: NewBrandMatcher(brands),
	}
}

// Extract builds a fresh entity bundle for message.
func (e *Extractor) Extract(message string) models.ExtractedEntities {
	return models.ExtractedEntities{
		Terms:      Terms(message),
		PriceRange: e.price.Parse(message),
		Category:   Category(message),
		Brand:      e.brands.Match(message),
	}
}

// Brands exposes the brand roster in match order.
func (e *Extractor) Brands() []string {
	return e.brands.Brands()
}
