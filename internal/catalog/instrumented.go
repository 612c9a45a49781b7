package catalog

import (
	"context"
	"time"

	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/models"
)

// Instrumented records query latency and failures for the wrapped store
// under the given backend label.
type Instrumented struct {
	next    Store
	backend string
	timeout time.Duration
}

func NewInstrumented(next Store, backend string) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

// WithTimeout bounds every call to the wrapped store. Zero disables the bound.
func (s *Instrumented) WithTimeout(d time.Duration) *Instrumented {
	s.timeout = d
	return s
}

func (s *Instrumented) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Instrumented) Query(ctx context.Context, f models.CatalogFilter) ([]models.Product, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	products, err := s.next.Query(ctx, f)
	s.observe(start, err)
	return products, err
}

func (s *Instrumented) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.next.Categories(ctx)
	s.observe(start, err)
	return out, err
}

func (s *Instrumented) Brands(ctx context.Context) ([]string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.next.Brands(ctx)
	s.observe(start, err)
	return out, err
}

func (s *Instrumented) Product(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	p, err := s.next.Product(ctx, id)
	// a missing product is an answer, not a backend failure
	if err != nil && !isNotFound(err) {
		s.observe(start, err)
		return p, err
	}
	s.observe(start, nil)
	return p, err
}

func (s *Instrumented) observe(start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		metrics.CatalogQueryErrors.WithLabelValues(s.backend).Inc()
	}
	metrics.CatalogQueryDuration.WithLabelValues(s.backend, status).Observe(time.Since(start).Seconds())
}
