// Package memory is an in-process catalog backed by an immutable snapshot
// that can be swapped atomically, e.g. when a fixture file changes.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/models"
)

// Store implements catalog.Store. Readers never see a partially replaced
// snapshot.
type Store struct {
	mu       sync.RWMutex
	products []models.Product
	byID     map[int64]int
}

var _ catalog.Store = (*Store)(nil)

// New copies products into a fresh store.
func New(products []models.Product) *Store {
	s := &Store{}
	s.Replace(products)
	return s
}

// Replace swaps the snapshot.
func (s *Store) Replace(products []models.Product) {
	snapshot := make([]models.Product, len(products))
	for i, p := range products {
		p.Features = append([]string(nil), p.Features...)
		snapshot[i] = p
	}
	catalog.SortProducts(snapshot, models.OrderDefault)

	byID := make(map[int64]int, len(snapshot))
	for i, p := range snapshot {
		byID[p.ID] = i
	}

	s.mu.Lock()
	s.products = snapshot
	s.byID = byID
	s.mu.Unlock()
}

// Len is the number of products in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func (s *Store) Query(ctx context.Context, f models.CatalogFilter) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var out []models.Product
	for _, p := range s.products {
		if catalog.Matches(p, f) {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	catalog.SortProducts(out, f.OrderBy)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(p models.Product) string { return p.Category })
}

func (s *Store) Brands(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(p models.Product) string { return p.Brand })
}

func (s *Store) distinct(ctx context.Context, field func(models.Product) string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	seen := make(map[string]struct{})
	for _, p := range s.products {
		if v := field(p); v != "" {
			seen[v] = struct{}{}
		}
	}
	s.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) Product(ctx context.Context, id int64) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, id)
	}
	p := s.products[i]
	p.Features = append([]string(nil), p.Features...)
	return &p, nil
}
