package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ==========================
// Defaults
// ==========================

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: shop-assistant
catalog:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 6, cfg.Assistant.ResultLimit)
	assert.InDelta(t, 0.2, cfg.Assistant.AroundFactor, 1e-9)
	assert.InDelta(t, 4.5, cfg.Assistant.SearchFallbackMinRating, 1e-9)
	assert.InDelta(t, 4.5, cfg.Assistant.RecommendMinRating, 1e-9)
	assert.InDelta(t, 4.7, cfg.Assistant.GeneralMinRating, 1e-9)
	assert.Equal(t, "postgres", cfg.Database.Postgres.Driver)
	assert.Equal(t, "products", cfg.Database.Elasticsearch.Index)
	assert.Equal(t, "catalog:query:", cfg.Catalog.Cache.Prefix)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_WorkerDefaults(t *testing.T) {
	path := writeConfig(t, `
workers:
  resolve-chat-message:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	w := GetWorkerConfig(cfg, "resolve-chat-message")
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
	assert.True(t, IsWorkerEnabled(cfg, "search-products"))
}

// ==========================
// Environment overrides
// ==========================

func TestLoadFromFile_EnvOverridesBackend(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "sqlite")
	t.Setenv("DATABASE_SQLITE_PATH", "/tmp/catalog.db")

	path := writeConfig(t, `
catalog:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Catalog.Backend)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.SQLite.Path)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")

	path := writeConfig(t, `
catalog:
  backend: postgres
database:
  postgres:
    host: localhost
    database: shop
    user: shop
    password: ${TEST_PG_PASSWORD}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "dbname=shop")
}

// ==========================
// Validation
// ==========================

func TestLoadFromFile_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		errPart string
	}{
		{
			name:    "unknown backend",
			body:    "catalog:\n  backend: mongo\n",
			errPart: "unknown catalog.backend",
		},
		{
			name:    "postgres without host",
			body:    "catalog:\n  backend: postgres\n",
			errPart: "database.postgres.host",
		},
		{
			name:    "sqlite without path",
			body:    "catalog:\n  backend: sqlite\n",
			errPart: "database.sqlite.path",
		},
		{
			name:    "elasticsearch without address",
			body:    "catalog:\n  backend: elasticsearch\n",
			errPart: "database.elasticsearch",
		},
		{
			name:    "cache without redis",
			body:    "catalog:\n  backend: memory\n  cache:\n    enabled: true\n",
			errPart: "database.redis.address",
		},
		{
			name:    "watch without fixture",
			body:    "catalog:\n  backend: memory\n  watch: true\n",
			errPart: "catalog.fixture_path",
		},
		{
			name:    "around factor out of range",
			body:    "assistant:\n  around_factor: 1.5\n",
			errPart: "around_factor",
		},
		{
			name:    "bad postgres driver",
			body:    "catalog:\n  backend: postgres\ndatabase:\n  postgres:\n    host: h\n    database: d\n    user: u\n    driver: mysql\n",
			errPart: "driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestElasticsearchConfig_Addresses(t *testing.T) {
	assert.Equal(t, []string{"http://es:9200"}, ElasticsearchConfig{URL: "http://es:9200"}.GetAddresses())
	assert.Equal(t, "http://a:9200", ElasticsearchConfig{Addresses: []string{"http://a:9200"}}.GetURL())
	assert.Nil(t, ElasticsearchConfig{}.GetAddresses())
}
