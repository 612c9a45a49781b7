package sqlstore

import (
	"fmt"
	"strings"

	"shop-assistant/internal/models"
)

const productColumns = "id, name, description, price, category, brand, image_url, rating, stock, features"

// likeEscaper escapes LIKE metacharacters; patterns use ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// queryBuilder accumulates WHERE clauses and their bind arguments.
type queryBuilder struct {
	dialect Dialect
	where   []string
	args    []interface{}
}

func (b *queryBuilder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

func (b *queryBuilder) add(clause string) {
	b.where = append(b.where, clause)
}

// buildFilterQuery renders f as a single SELECT against table.
func buildFilterQuery(d Dialect, table string, f models.CatalogFilter) (string, []interface{}) {
	b := &queryBuilder{dialect: d}

	if f.Category != "" {
		b.add("LOWER(category) = " + b.bind(strings.ToLower(f.Category)))
	}
	if f.BrandContains != "" {
		b.add(`LOWER(brand) LIKE ` + b.bind(containsPattern(f.BrandContains)) + ` ESCAPE '\'`)
	}
	if f.PriceMin != nil {
		b.add("price >= " + b.bind(*f.PriceMin))
	}
	if f.PriceMax != nil {
		b.add("price <= " + b.bind(*f.PriceMax))
	}
	if f.RatingMin != nil {
		b.add("rating >= " + b.bind(*f.RatingMin))
	}
	if f.InStockOnly {
		b.add("stock > 0")
	}
	for _, term := range f.Terms {
		name := b.bind(containsPattern(term))
		desc := b.bind(containsPattern(term))
		feat := b.bind(containsPattern(term))
		b.add(fmt.Sprintf(`(LOWER(name) LIKE %s ESCAPE '\' OR LOWER(description) LIKE %s ESCAPE '\' OR LOWER(%s) LIKE %s ESCAPE '\')`,
			name, desc, d.FeaturesText(), feat))
	}
	if f.Keyword != "" {
		cols := []string{"name", "description", "brand", "category", d.FeaturesText()}
		ors := make([]string, len(cols))
		for i, col := range cols {
			ors[i] = fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, col, b.bind(containsPattern(f.Keyword)))
		}
		b.add("(" + strings.Join(ors, " OR ") + ")")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(productColumns)
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(orderClause(f.OrderBy))
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.bind(f.Limit))
	}
	return sb.String(), b.args
}

func orderClause(key models.OrderKey) string {
	switch key {
	case models.OrderRatingDesc:
		return "rating DESC, id ASC"
	case models.OrderPriceAsc:
		return "price ASC, id ASC"
	default:
		return "id ASC"
	}
}
