package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "modernc.org/sqlite"
)

// SQLiteCatalog serves the product catalog from a SQLite file.
type SQLiteCatalog struct {
	db *sql.DB
}

var _ store.Catalog = (*SQLiteCatalog)(nil)

func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

func (c *SQLiteCatalog) RunMigrations() error {
	driver, err := sqlite.WithInstance(c.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	return runMigrations("migrations/sqlite", "sqlite", driver)
}

// Seed loads the given assortment when the catalog is empty.
func (c *SQLiteCatalog) Seed(ctx context.Context, products []domain.Product, categories []domain.Category, collections []domain.Collection) error {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for i, p := range products {
		if err := insertProduct(ctx, tx, i, p); err != nil {
			return err
		}
	}
	for i, cat := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, position, name, image) VALUES (?, ?, ?, ?)`,
			cat.ID, i, cat.Name, cat.Image); err != nil {
			return fmt.Errorf("insert category %s: %w", cat.ID, err)
		}
	}
	for i, col := range collections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO collections (id, position, name, image, description) VALUES (?, ?, ?, ?, ?)`,
			col.ID, i, col.Name, col.Image, col.Description); err != nil {
			return fmt.Errorf("insert collection %s: %w", col.ID, err)
		}
	}

	return tx.Commit()
}

func insertProduct(ctx context.Context, tx *sql.Tx, position int, p domain.Product) error {
	images, err := marshalJSON(p.Images, "[]")
	if err != nil {
		return err
	}
	tags, err := marshalJSON(p.Tags, "[]")
	if err != nil {
		return err
	}
	features, err := marshalJSON(p.Features, "[]")
	if err != nil {
		return err
	}
	specs, err := marshalJSON(p.Specs, "{}")
	if err != nil {
		return err
	}

	query := `INSERT INTO products (id, position, name, description, price, original_price, discount, image, images,
	              category, tags, features, specs, material, stock, rating, reviews, featured, best_seller, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		p.ID, position, p.Name, p.Description, p.Price, p.OriginalPrice, p.Discount, p.Image, images,
		p.Category, tags, features, specs, p.Material, p.Stock, p.Rating, p.Reviews,
		p.Featured, p.BestSeller, p.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert product %s: %w", p.ID, err)
	}
	return nil
}

func marshalJSON(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal catalog field: %w", err)
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}

const productColumns = `id, name, description, price, original_price, discount, image, images, category,
	tags, features, specs, material, stock, rating, reviews, featured, best_seller, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                             domain.Product
		images, tags, features, specs string
		createdAt                     string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Discount,
		&p.Image,
		&images,
		&p.Category,
		&tags,
		&features,
		&specs,
		&p.Material,
		&p.Stock,
		&p.Rating,
		&p.Reviews,
		&p.Featured,
		&p.BestSeller,
		&createdAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	for _, f := range []struct {
		raw string
		dst any
	}{
		{images, &p.Images},
		{tags, &p.Tags},
		{features, &p.Features},
		{specs, &p.Specs},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return domain.Product{}, fmt.Errorf("unmarshal product %s: %w", p.ID, err)
		}
	}

	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return domain.Product{}, fmt.Errorf("parse created_at of %s: %w", p.ID, err)
	}
	return p, nil
}

func (c *SQLiteCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

func (c *SQLiteCatalog) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, store.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product %s: %w", id, err)
	}
	return p, nil
}

func (c *SQLiteCatalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, image FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Image); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (c *SQLiteCatalog) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, image, description FROM collections ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	var collections []domain.Collection
	for rows.Next() {
		var col domain.Collection
		if err := rows.Scan(&col.ID, &col.Name, &col.Image, &col.Description); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, col)
	}
	return collections, rows.Err()
}

func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}
