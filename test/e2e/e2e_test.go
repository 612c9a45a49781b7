// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"shop-assistant/internal/api"
	"shop-assistant/internal/assistant"
	"shop-assistant/internal/catalog/backend"
	"shop-assistant/internal/catalog/catalogtest"
	"shop-assistant/internal/common/config"
	apiclient "shop-assistant/internal/common/http"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/models"

	sp "shop-assistant/internal/workers/catalog/search-products"
	rcm "shop-assistant/internal/workers/chat/resolve-chat-message"
)

// ==========================
// 1. Container Setup
// ==========================

type services struct {
	pgHost    string
	pgPort    int
	redisAddr string
}

// startServices runs PostgreSQL and Redis containers. The suite needs Docker
// and only runs with E2E=1.
func startServices(t *testing.T) *services {
	t.Helper()
	if os.Getenv("E2E") == "" {
		t.Skip("set E2E=1 to run the container-backed suite")
	}
	ctx := context.Background()

	pg, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	rc, err := tcredis.Run(ctx,
		"redis:7.4-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := rc.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	pgHost, err := pg.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)
	port, err := strconv.Atoi(pgPort.Port())
	require.NoError(t, err)

	redisHost, err := rc.Host(ctx)
	require.NoError(t, err)
	redisPort, err := rc.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return &services{
		pgHost:    pgHost,
		pgPort:    port,
		redisAddr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	}
}

func (s *services) config(driver string) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Postgres: config.PostgresConfig{
				Driver:         driver,
				Host:           s.pgHost,
				Port:           s.pgPort,
				Database:       "shop_test",
				User:           "test",
				Password:       "test",
				SSLMode:        "disable",
				MaxConnections: 5,
				MaxIdle:        2,
				Table:          "products_" + driver,
			},
			Redis: config.RedisConfig{Address: s.redisAddr},
		},
		Catalog: config.CatalogConfig{
			Backend: config.BackendPostgres,
			Timeout: 5000,
			Cache:   config.CacheConfig{Enabled: true, TTL: 60000, Prefix: "e2e:" + driver + ":"},
		},
		Assistant: config.AssistantConfig{
			ResultLimit:             6,
			AroundFactor:            0.2,
			SearchFallbackMinRating: 4.5,
			RecommendMinRating:      4.5,
			GeneralMinRating:        4.7,
		},
	}
}

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ==========================
// 2. Full Flow
// ==========================

func TestFullE2E(t *testing.T) {
	svc := startServices(t)

	for _, driver := range []string{"postgres", "pgx"} {
		t.Run(driver, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			cfg := svc.config(driver)
			zapLog := zaptest.NewLogger(t)
			log := logger.NewZapAdapter(zapLog)

			b, err := backend.Open(ctx, cfg, backend.Options{Logger: zapLog, Attempts: 5, Delay: time.Second})
			require.NoError(t, err)
			defer b.Close()

			require.NoError(t, b.Import(ctx, catalogtest.Products()))

			engine := assistant.NewEngine(cfg.Assistant, log, nil)
			checks := map[string]api.ReadinessCheck{}
			for name, check := range b.Checks {
				checks[name] = check
			}
			srv := httptest.NewServer(api.NewRouter(api.Deps{
				Engine:  engine,
				Catalog: b.Store,
				Logger:  log,
				Checks:  checks,
			}))
			defer srv.Close()
			client := apiclient.NewClient(srv.URL, 10*time.Second)

			testChatOverHTTP(t, ctx, client)
			testSearchOverHTTP(t, ctx, client)
			testWorkers(t, ctx, engine, b, log)
		})
	}
}

func testChatOverHTTP(t *testing.T, ctx context.Context, client *apiclient.Client) {
	tests := []struct {
		message    string
		wantIntent models.Intent
		wantIDs    []int64
	}{
		{"find a macbook", models.IntentFindOrSearch, []int64{3}},
		{"I need a refrigerator", models.IntentFindOrSearch, []int64{3, 9, 1, 7, 5, 8}},
		{"compare phones under $1000", models.IntentPriceCompare, []int64{2, 12, 1}},
		{"recommend a laptop", models.IntentRecommend, []int64{3, 4}},
		{"gaming consoles please", models.IntentCategoryBrowse, []int64{7, 8}},
		{"hello there", models.IntentGreeting, []int64{}},
	}

	for _, tt := range tests {
		// twice: the second answer comes from the Redis cache
		for round := 0; round < 2; round++ {
			resp, err := client.Chat(ctx, models.ChatRequest{Message: tt.message, SessionID: "e2e"})
			require.NoError(t, err, tt.message)
			assert.Equal(t, tt.wantIntent, resp.Intent, tt.message)
			assert.Equal(t, tt.wantIDs, ids(resp.Products), tt.message)
			assert.Equal(t, "e2e", resp.SessionID)
		}
	}
}

func testSearchOverHTTP(t *testing.T, ctx context.Context, client *apiclient.Client) {
	got, err := client.SearchProducts(ctx, apiclient.SearchParams{Query: "wireless"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 6}, ids(got))

	got, err = client.SearchProducts(ctx, apiclient.SearchParams{Brand: "sam", MaxPrice: models.Float(800)})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 12}, ids(got))

	p, err := client.Product(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "EOS R6 Mark II", p.Name)
	assert.Equal(t, []string{"full frame", "4K video", "IBIS"}, p.Features)

	_, err = client.Product(ctx, 999)
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func testWorkers(t *testing.T, ctx context.Context, engine *assistant.Engine, b *backend.Backend, log logger.Logger) {
	resolve := rcm.NewHandler(rcm.LoadConfig(), engine, b.Store, log)
	out, err := resolve.Execute(ctx, &rcm.Input{Message: "show me sony headphones around $400", SessionID: "job"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentFindOrSearch, out.Intent)
	assert.Equal(t, "job", out.SessionID)

	search := sp.NewHandler(sp.LoadConfig(), b.Store, log)
	res, err := search.Execute(ctx, &sp.Input{Category: "gaming"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
}
