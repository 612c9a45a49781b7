package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lib/pq"
)

// Dialect isolates the SQL differences between the supported engines.
type Dialect interface {
	Name() string
	// Placeholder returns the n-th (1-based) bind parameter.
	Placeholder(n int) string
	// FeaturesText is an expression rendering the features column as text
	// for substring matching.
	FeaturesText() string
	// FeaturesScanner returns a scan target and a function that yields the
	// decoded features after Scan.
	FeaturesScanner() (interface{}, func() ([]string, error))
	// FeaturesValue encodes features for insertion.
	FeaturesValue(features []string) (interface{}, error)
	// Schema returns the CREATE TABLE statement for table.
	Schema(table string) string
}

// Postgres stores features as TEXT[].
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (Postgres) FeaturesText() string { return "array_to_string(features, ' ')" }

func (Postgres) FeaturesScanner() (interface{}, func() ([]string, error)) {
	var features []string
	return pq.Array(&features), func() ([]string, error) { return features, nil }
}

func (Postgres) FeaturesValue(features []string) (interface{}, error) {
	return pq.Array(features), nil
}

func (Postgres) Schema(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price NUMERIC(12,2) NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	brand TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	stock INTEGER NOT NULL DEFAULT 0,
	features TEXT[] NOT NULL DEFAULT '{}'
)`, table)
}

// SQLite stores features as a JSON array in a TEXT column.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Placeholder(int) string { return "?" }

func (SQLite) FeaturesText() string { return "features" }

func (SQLite) FeaturesScanner() (interface{}, func() ([]string, error)) {
	var raw sql.NullString
	return &raw, func() ([]string, error) {
		if !raw.Valid || raw.String == "" {
			return nil, nil
		}
		var features []string
		if err := json.Unmarshal([]byte(raw.String), &features); err != nil {
			return nil, fmt.Errorf("decode features: %w", err)
		}
		return features, nil
	}
}

func (SQLite) FeaturesValue(features []string) (interface{}, error) {
	if features == nil {
		features = []string{}
	}
	b, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (SQLite) Schema(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	brand TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	rating REAL NOT NULL DEFAULT 0,
	stock INTEGER NOT NULL DEFAULT 0,
	features TEXT NOT NULL DEFAULT '[]'
)`, table)
}
