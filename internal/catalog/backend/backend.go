// Package backend opens the catalog selected by configuration and stacks the
// instrumentation and cache decorators on top of it.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/catalog/cache"
	esstore "shop-assistant/internal/catalog/elasticsearch"
	"shop-assistant/internal/catalog/memory"
	"shop-assistant/internal/catalog/sqlstore"
	"shop-assistant/internal/common/config"
	"shop-assistant/internal/common/database"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/models"

	"go.uber.org/zap"
)

// Options tune connection retries. Zero values take the defaults below.
type Options struct {
	Logger   *zap.Logger
	Attempts int
	Delay    time.Duration
}

const (
	defaultAttempts = 15
	defaultDelay    = 2 * time.Second
)

// Backend is an opened catalog plus the probes and cleanups that belong to it.
type Backend struct {
	// Store is the decorated catalog handed to the engine and the API.
	Store catalog.Store
	Name  string
	// Checks are readiness probes keyed by dependency name.
	Checks map[string]func(context.Context) error

	raw     catalog.Store
	cached  *cache.Store
	closers []func() error
}

// Open connects the configured backend. The memory backend's fixture watcher
// runs until ctx is done.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Backend, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Attempts <= 0 {
		opts.Attempts = defaultAttempts
	}
	if opts.Delay <= 0 {
		opts.Delay = defaultDelay
	}
	log := logger.NewZapAdapter(opts.Logger)

	b := &Backend{
		Name:   cfg.Catalog.Backend,
		Checks: make(map[string]func(context.Context) error),
	}

	var err error
	switch cfg.Catalog.Backend {
	case config.BackendMemory:
		err = b.openMemory(ctx, cfg, log)
	case config.BackendPostgres:
		err = b.openPostgres(ctx, cfg, opts)
	case config.BackendSQLite:
		err = b.openSQLite(ctx, cfg)
	case config.BackendElasticsearch:
		err = b.openElasticsearch(ctx, cfg, opts)
	default:
		err = fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
	if err != nil {
		b.Close()
		return nil, err
	}

	var store catalog.Store = catalog.NewInstrumented(b.raw, b.Name).
		WithTimeout(config.GetDuration(cfg.Catalog.Timeout))

	if cfg.Catalog.Cache.Enabled {
		var rc *database.RedisClient
		err := database.RetryWithBackoff(func() error {
			var err error
			if rc, err = database.NewRedis(cfg.Database.Redis); err != nil {
				return err
			}
			if err := rc.Ping(ctx); err != nil {
				rc.Close()
				return err
			}
			return nil
		}, opts.Attempts, opts.Delay, opts.Logger, "Redis connection")
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, rc.Close)
		b.Checks["redis"] = rc.Ping

		b.cached = cache.New(store, rc.Client, cfg.Catalog.CacheTTL(), cfg.Catalog.Cache.Prefix, log)
		store = b.cached
	}

	b.Store = store
	opts.Logger.Info("catalog backend ready",
		zap.String("backend", b.Name),
		zap.Bool("cache", cfg.Catalog.Cache.Enabled),
	)
	return b, nil
}

func (b *Backend) openMemory(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	var products []models.Product
	if path := cfg.Catalog.FixturePath; path != "" {
		loaded, err := memory.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load catalog fixture: %w", err)
		}
		products = loaded
	} else {
		log.Warn("no catalog fixture configured, serving an empty catalog", nil)
	}

	mem := memory.New(products)
	if cfg.Catalog.Watch {
		if err := memory.Watch(ctx, cfg.Catalog.FixturePath, mem, log); err != nil {
			return fmt.Errorf("watch catalog fixture: %w", err)
		}
	}
	b.raw = mem
	return nil
}

func (b *Backend) openPostgres(ctx context.Context, cfg *config.Config, opts Options) error {
	var pg *database.PostgresClient
	err := database.RetryWithBackoff(func() error {
		var err error
		if pg, err = database.NewPostgres(cfg.Database.Postgres); err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		return nil
	}, opts.Attempts, opts.Delay, opts.Logger, "PostgreSQL connection")
	if err != nil {
		return err
	}
	b.closers = append(b.closers, pg.Close)
	b.Checks["postgres"] = pg.Ping

	dialect, err := sqlstore.DialectFor(pg.Driver)
	if err != nil {
		return err
	}
	return b.openSQL(ctx, pg.DB, dialect, cfg.Database.Postgres.Table)
}

func (b *Backend) openSQLite(ctx context.Context, cfg *config.Config) error {
	lite, err := database.NewSQLite(cfg.Database.SQLite)
	if err != nil {
		return err
	}
	b.closers = append(b.closers, lite.Close)
	b.Checks["sqlite"] = lite.Ping

	return b.openSQL(ctx, lite.DB, sqlstore.SQLite{}, cfg.Database.SQLite.Table)
}

func (b *Backend) openSQL(ctx context.Context, db *sql.DB, dialect sqlstore.Dialect, table string) error {
	store, err := sqlstore.New(db, dialect, table)
	if err != nil {
		return err
	}
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate catalog table: %w", err)
	}
	b.raw = store
	return nil
}

func (b *Backend) openElasticsearch(ctx context.Context, cfg *config.Config, opts Options) error {
	var client *database.ElasticsearchClient
	err := database.RetryWithBackoff(func() error {
		var err error
		if client, err = database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
			return err
		}
		return client.Ping(ctx)
	}, opts.Attempts, opts.Delay, opts.Logger, "Elasticsearch connection")
	if err != nil {
		return err
	}
	b.Checks["elasticsearch"] = client.Ping

	store := esstore.New(client.Client, cfg.Database.Elasticsearch.Index)
	if err := store.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure catalog index: %w", err)
	}
	b.raw = store
	return nil
}

// Import writes products into the underlying backend and drops cached
// answers. The memory backend replaces its snapshot.
func (b *Backend) Import(ctx context.Context, products []models.Product) error {
	if err := memory.Validate(products); err != nil {
		return err
	}

	var err error
	switch s := b.raw.(type) {
	case *memory.Store:
		s.Replace(products)
	case *sqlstore.Store:
		err = s.Upsert(ctx, products)
	case *esstore.Store:
		err = s.Index(ctx, products)
	default:
		err = fmt.Errorf("backend %s does not accept imports", b.Name)
	}
	if err != nil {
		return err
	}

	if b.cached != nil {
		return b.cached.Invalidate(ctx)
	}
	return nil
}

// Close releases connections in reverse order of opening.
func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	b.closers = nil
	return first
}
