package retrieval

import (
	"context"
	"fmt"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/models"
)

// Outcome is what a plan produced.
type Outcome struct {
	Products     []models.Product
	FallbackUsed bool
}

// Retrieve executes plan against q. Results are truncated to each filter's
// limit whatever the backend returned. Errors are returned unwrapped of any
// retry; the caller decides.
func Retrieve(ctx context.Context, q catalog.Querier, plan Plan) (Outcome, error) {
	if plan.Primary == nil {
		return Outcome{Products: []models.Product{}}, nil
	}

	products, err := run(ctx, q, *plan.Primary)
	if err != nil {
		return Outcome{}, fmt.Errorf("primary query: %w", err)
	}
	if len(products) > 0 || plan.Fallback == nil {
		return Outcome{Products: products}, nil
	}

	products, err = run(ctx, q, *plan.Fallback)
	if err != nil {
		return Outcome{}, fmt.Errorf("fallback query: %w", err)
	}
	return Outcome{Products: products, FallbackUsed: true}, nil
}

func run(ctx context.Context, q catalog.Querier, f models.CatalogFilter) ([]models.Product, error) {
	products, err := q.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	if f.Limit > 0 && len(products) > f.Limit {
		products = products[:f.Limit]
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
