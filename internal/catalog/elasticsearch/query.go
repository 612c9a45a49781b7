package elasticsearch

import (
	"strings"

	"shop-assistant/internal/models"
)

// maxWindow is the largest page Elasticsearch returns by default.
const maxWindow = 10000

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func containsWildcard(field, value string) map[string]interface{} {
	return map[string]interface{}{
		"wildcard": map[string]interface{}{
			field: map[string]interface{}{
				"value":            "*" + wildcardEscaper.Replace(strings.ToLower(value)) + "*",
				"case_insensitive": true,
			},
		},
	}
}

// buildSearchBody renders f as a bool query. All predicates are filters, so
// scoring plays no part in ordering.
func buildSearchBody(f models.CatalogFilter) map[string]interface{} {
	filter := []interface{}{}

	if f.Category != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{
				"category": map[string]interface{}{"value": f.Category, "case_insensitive": true},
			},
		})
	}
	if f.BrandContains != "" {
		filter = append(filter, containsWildcard("brand", f.BrandContains))
	}

	price := map[string]interface{}{}
	if f.PriceMin != nil {
		price["gte"] = *f.PriceMin
	}
	if f.PriceMax != nil {
		price["lte"] = *f.PriceMax
	}
	if len(price) > 0 {
		filter = append(filter, map[string]interface{}{"range": map[string]interface{}{"price": price}})
	}
	if f.RatingMin != nil {
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{"rating": map[string]interface{}{"gte": *f.RatingMin}},
		})
	}
	if f.InStockOnly {
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{"stock": map[string]interface{}{"gt": 0}},
		})
	}

	for _, term := range f.Terms {
		filter = append(filter, map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					containsWildcard("name.raw", term),
					containsWildcard("description.raw", term),
					containsWildcard("features", term),
				},
				"minimum_should_match": 1,
			},
		})
	}

	if f.Keyword != "" {
		filter = append(filter, map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					containsWildcard("name.raw", f.Keyword),
					containsWildcard("description.raw", f.Keyword),
					containsWildcard("brand", f.Keyword),
					containsWildcard("category", f.Keyword),
					containsWildcard("features", f.Keyword),
				},
				"minimum_should_match": 1,
			},
		})
	}

	size := f.Limit
	if size <= 0 || size > maxWindow {
		size = maxWindow
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filter,
			},
		},
		"sort":             sortClause(f.OrderBy),
		"size":             size,
		"track_total_hits": false,
	}
}

func sortClause(key models.OrderKey) []map[string]interface{} {
	byID := map[string]interface{}{"id": "asc"}
	switch key {
	case models.OrderRatingDesc:
		return []map[string]interface{}{{"rating": "desc"}, byID}
	case models.OrderPriceAsc:
		return []map[string]interface{}{{"price": "asc"}, byID}
	default:
		return []map[string]interface{}{byID}
	}
}

func termsAggregation(field string) map[string]interface{} {
	return map[string]interface{}{
		"size": 0,
		"aggs": map[string]interface{}{
			"values": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": field,
					"size":  1000,
					"order": map[string]interface{}{"_key": "asc"},
				},
			},
		},
	}
}

// indexMapping keeps category, brand and features as exact keywords and adds
// keyword subfields to the text fields for substring matching.
const indexMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "long"},
      "name":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description": {"type": "text", "fields": {"raw": {"type": "keyword", "ignore_above": 8191}}},
      "price":       {"type": "double"},
      "category":    {"type": "keyword"},
      "brand":       {"type": "keyword"},
      "image_url":   {"type": "keyword", "index": false},
      "rating":      {"type": "double"},
      "stock":       {"type": "integer"},
      "features":    {"type": "keyword"}
    }
  }
}`
