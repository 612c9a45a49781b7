package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/catalog/catalogtest"
	"shop-assistant/internal/catalog/memory"
	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{ *memory.Store }

func (brokenStore) Query(context.Context, models.CatalogFilter) ([]models.Product, error) {
	return nil, errors.New("backend down")
}

func TestInstrumented_CountsErrors(t *testing.T) {
	before := testutil.ToFloat64(metrics.CatalogQueryErrors.WithLabelValues("broken"))

	s := catalog.NewInstrumented(brokenStore{memory.New(nil)}, "broken")
	_, err := s.Query(context.Background(), models.CatalogFilter{})
	require.Error(t, err)

	after := testutil.ToFloat64(metrics.CatalogQueryErrors.WithLabelValues("broken"))
	assert.Equal(t, before+1, after)
}

func TestInstrumented_PassesThrough(t *testing.T) {
	s := catalog.NewInstrumented(memory.New(catalogtest.Products()), "memory-test")
	before := testutil.ToFloat64(metrics.CatalogQueryErrors.WithLabelValues("memory-test"))

	products, err := catalog.Featured(context.Background(), s)
	require.NoError(t, err)
	assert.Len(t, products, 8)

	_, err = s.Product(context.Background(), 999)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	cats, err := s.Categories(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cats, "Audio")

	assert.Equal(t, before, testutil.ToFloat64(metrics.CatalogQueryErrors.WithLabelValues("memory-test")))
}

type slowStore struct{ *memory.Store }

func (slowStore) Query(ctx context.Context, _ models.CatalogFilter) ([]models.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestInstrumented_WithTimeout(t *testing.T) {
	s := catalog.NewInstrumented(slowStore{memory.New(nil)}, "slow").WithTimeout(10 * time.Millisecond)

	_, err := s.Query(context.Background(), models.CatalogFilter{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
