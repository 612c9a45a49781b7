// Package sqlstore is the relational catalog backend. It serves PostgreSQL
// (lib/pq or pgx) and SQLite through database/sql.
package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"regexp"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/errors"
	"shop-assistant/internal/models"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store implements catalog.Store over a products table.
type Store struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

var _ catalog.Store = (*Store)(nil)

// New validates table, which is interpolated into every statement.
func New(db *sql.DB, dialect Dialect, table string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: nil db")
	}
	if table == "" {
		table = "products"
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("sqlstore: invalid table name %q", table)
	}
	return &Store{db: db, dialect: dialect, table: table}, nil
}

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return Postgres{}, nil
	case "sqlite3", "sqlite":
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}

func (s *Store) Query(ctx context.Context, f models.CatalogFilter) ([]models.Product, error) {
	query, args := buildFilterQuery(s.dialect, s.table, f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.wrap(ctx, models.QueryTypeFilter, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := s.scan(rows)
		if err != nil {
			return nil, s.wrap(ctx, models.QueryTypeFilter, err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(ctx, models.QueryTypeFilter, err)
	}
	return products, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, models.QueryTypeCategories, "category")
}

func (s *Store) Brands(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, models.QueryTypeBrands, "brand")
}

func (s *Store) distinct(ctx context.Context, qt models.QueryType, column string) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s <> '' ORDER BY %s", column, s.table, column, column)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.wrap(ctx, qt, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, s.wrap(ctx, qt, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(ctx, qt, err)
	}
	return out, nil
}

func (s *Store) Product(ctx context.Context, id int64) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", productColumns, s.table, s.dialect.Placeholder(1))

	p, err := s.scan(s.db.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, s.wrap(ctx, models.QueryTypeProductByID, err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scan(row scanner) (*models.Product, error) {
	var p models.Product
	features, decode := s.dialect.FeaturesScanner()
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.Brand, &p.ImageURL,
		&p.Rating, &p.Stock, features,
	); err != nil {
		return nil, err
	}
	f, err := decode()
	if err != nil {
		return nil, err
	}
	p.Features = f
	return &p, nil
}

func (s *Store) wrap(ctx context.Context, qt models.QueryType, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewCatalogTimeoutError(string(qt), err)
	}
	if stderrors.Is(err, sql.ErrConnDone) {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	return errors.NewCatalogQueryFailedError(string(qt), err)
}

// Migrate creates the products table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Schema(s.table)); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Upsert writes products in one transaction, replacing rows with the same id.
func (s *Store) Upsert(ctx context.Context, products []models.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.upsertStatement())
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		features, err := s.dialect.FeaturesValue(p.Features)
		if err != nil {
			return fmt.Errorf("product %d: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Description, p.Price,
			p.Category, p.Brand, p.ImageURL,
			p.Rating, p.Stock, features,
		); err != nil {
			return fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) upsertStatement() string {
	ph := make([]interface{}, 10)
	for i := range ph {
		ph[i] = s.dialect.Placeholder(i + 1)
	}
	values := fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s", ph...)
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)
ON CONFLICT (id) DO UPDATE SET
	name = excluded.name, description = excluded.description, price = excluded.price,
	category = excluded.category, brand = excluded.brand, image_url = excluded.image_url,
	rating = excluded.rating, stock = excluded.stock, features = excluded.features`,
		s.table, productColumns, values)
}
