package retrieval

import (
	"context"
	"errors"
	"testing"

	"shop-assistant/internal/catalog/catalogtest"
	"shop-assistant/internal/catalog/memory"
	"shop-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier returns canned results in call order and records filters.
type recordingQuerier struct {
	results [][]models.Product
	errs    []error
	filters []models.CatalogFilter
}

func (q *recordingQuerier) Query(_ context.Context, f models.CatalogFilter) ([]models.Product, error) {
	i := len(q.filters)
	q.filters = append(q.filters, f)
	var err error
	if i < len(q.errs) {
		err = q.errs[i]
	}
	if i < len(q.results) {
		return q.results[i], err
	}
	return nil, err
}

func manyProducts(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{ID: int64(i + 1), Name: "p", Rating: 4.9, Stock: 1}
	}
	return out
}

func TestRetrieve_NoQueryForEmptyPlan(t *testing.T) {
	q := &recordingQuerier{}
	out, err := Retrieve(context.Background(), q, Plan{})
	require.NoError(t, err)
	assert.Empty(t, out.Products)
	assert.NotNil(t, out.Products)
	assert.Empty(t, q.filters)
}

func TestRetrieve_PrimaryHit(t *testing.T) {
	b := NewBuilder(DefaultSettings())
	q := &recordingQuerier{results: [][]models.Product{manyProducts(2)}}

	out, err := Retrieve(context.Background(), q, b.Build(models.IntentFindOrSearch, models.ExtractedEntities{Terms: []string{"x"}}, ""))
	require.NoError(t, err)
	assert.Len(t, out.Products, 2)
	assert.False(t, out.FallbackUsed)
	assert.Len(t, q.filters, 1)
}

func TestRetrieve_FallbackOnEmpty(t *testing.T) {
	b := NewBuilder(DefaultSettings())
	q := &recordingQuerier{results: [][]models.Product{nil, manyProducts(3)}}

	out, err := Retrieve(context.Background(), q, b.Build(models.IntentFindOrSearch, models.ExtractedEntities{Terms: []string{"x"}}, ""))
	require.NoError(t, err)
	assert.True(t, out.FallbackUsed)
	assert.Len(t, out.Products, 3)
	require.Len(t, q.filters, 2)
	assert.InDelta(t, 4.5, *q.filters[1].RatingMin, 1e-9)
}

func TestRetrieve_NoFallbackForOtherIntents(t *testing.T) {
	b := NewBuilder(DefaultSettings())
	q := &recordingQuerier{}

	out, err := Retrieve(context.Background(), q, b.Build(models.IntentRecommend, models.ExtractedEntities{}, ""))
	require.NoError(t, err)
	assert.False(t, out.FallbackUsed)
	assert.Empty(t, out.Products)
	assert.Len(t, q.filters, 1)
}

func TestRetrieve_TruncatesToLimit(t *testing.T) {
	b := NewBuilder(DefaultSettings())
	q := &recordingQuerier{results: [][]models.Product{manyProducts(20)}}

	out, err := Retrieve(context.Background(), q, b.Build(models.IntentFallback, models.ExtractedEntities{}, ""))
	require.NoError(t, err)
	assert.Len(t, out.Products, 6)
}

func TestRetrieve_PropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	b := NewBuilder(DefaultSettings())
	plan := b.Build(models.IntentFindOrSearch, models.ExtractedEntities{}, "")

	_, err := Retrieve(context.Background(), &recordingQuerier{errs: []error{boom}}, plan)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "primary query")

	_, err = Retrieve(context.Background(), &recordingQuerier{errs: []error{nil, boom}}, plan)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fallback query")
}

func TestRetrieve_AgainstMemoryCatalog(t *testing.T) {
	store := memory.New(catalogtest.Products())
	b := NewBuilder(DefaultSettings())

	out, err := Retrieve(context.Background(), store, b.Build(models.IntentFindOrSearch, models.ExtractedEntities{
		Terms: []string{"wireless"},
	}, ""))
	require.NoError(t, err)
	assert.False(t, out.FallbackUsed)
	// Bose earbuds are out of stock
	require.Len(t, out.Products, 2)
	assert.Equal(t, int64(5), out.Products[0].ID)
	assert.Equal(t, int64(2), out.Products[1].ID)
}
