// Package cache puts a Redis read-through cache in front of a catalog store.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

// Store serves repeated filters and browse lookups from Redis. Redis errors
// never fail a request; the backing store answers instead.
type Store struct {
	next   catalog.Store
	redis  redis.Cmdable
	ttl    time.Duration
	prefix string
	logger logger.Logger
}

var _ catalog.Store = (*Store)(nil)

func New(next catalog.Store, rdb redis.Cmdable, ttl time.Duration, prefix string, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Store{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		prefix: prefix,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func (s *Store) filterKey(f models.CatalogFilter) string {
	raw, _ := json.Marshal(f)
	sum := sha256.Sum256(raw)
	return s.prefix + "filter:" + hex.EncodeToString(sum[:])
}

func (s *Store) Query(ctx context.Context, f models.CatalogFilter) ([]models.Product, error) {
	key := s.filterKey(f)

	var cached []models.Product
	if s.get(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.next.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	s.set(ctx, key, products)
	return products, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.strings(ctx, s.prefix+"categories", s.next.Categories)
}

func (s *Store) Brands(ctx context.Context) ([]string, error) {
	return s.strings(ctx, s.prefix+"brands", s.next.Brands)
}

// Product lookups are not cached.
func (s *Store) Product(ctx context.Context, id int64) (*models.Product, error) {
	return s.next.Product(ctx, id)
}

func (s *Store) strings(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	var cached []string
	if s.get(ctx, key, &cached) {
		return cached, nil
	}

	values, err := load(ctx)
	if err != nil {
		return nil, err
	}
	s.set(ctx, key, values)
	return values, nil
}

func (s *Store) get(ctx context.Context, key string, dest interface{}) bool {
	val, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		metrics.CatalogCacheMisses.Inc()
		return false
	}
	if err != nil {
		metrics.CatalogCacheMisses.Inc()
		s.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CatalogCacheMisses.Inc()
		s.logger.Warn("cache entry corrupt", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	metrics.CatalogCacheHits.Inc()
	return true
}

func (s *Store) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// Invalidate drops every cached entry under the prefix.
func (s *Store) Invalidate(ctx context.Context) error {
	iter := s.redis.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.redis.Del(ctx, keys...).Err()
}
