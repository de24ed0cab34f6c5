package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/lib/pq"
)

var ErrDuplicateOrder = errors.New("order is already archived")

type Credentials struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// PostgresOrderArchive keeps placed orders after their session expires.
type PostgresOrderArchive struct {
	db *sql.DB
}

func NewPostgresOrderArchive(cred Credentials) (*PostgresOrderArchive, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	return &PostgresOrderArchive{db: db}, nil
}

func (a *PostgresOrderArchive) RunMigrations() error {
	driver, err := postgres.WithInstance(a.db, &postgres.Config{
		MigrationsTable: "storefront_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	return runMigrations("migrations/postgres", "postgres", driver)
}

// Save archives one placed order. A second save of the same order returns ErrDuplicateOrder.
func (a *PostgresOrderArchive) Save(ctx context.Context, e domain.OrderPlacedEvent) error {
	itemsJSON, err := json.Marshal(e.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	addressJSON, err := json.Marshal(e.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	query := `INSERT INTO orders_archive (session_id, order_id, event_id, items, subtotal, shipping, discount, total,
	              payment_method, shipping_address, placed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = a.db.ExecContext(ctx, query,
		e.SessionID,
		e.OrderID,
		e.EventID,
		itemsJSON,
		e.Subtotal,
		e.Shipping,
		e.Discount,
		e.Total,
		e.PaymentMethod,
		addressJSON,
		e.PlacedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("insert archived order: %w", err)
	}
	return nil
}

// ListBySession returns the archived orders of a session, newest first.
func (a *PostgresOrderArchive) ListBySession(ctx context.Context, sessionID string) ([]domain.OrderPlacedEvent, error) {
	query := `SELECT session_id, order_id, event_id, items, subtotal, shipping, discount, total,
	                 payment_method, shipping_address, placed_at
	          FROM orders_archive WHERE session_id = $1 ORDER BY placed_at DESC`

	rows, err := a.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query archived orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.OrderPlacedEvent{}
	for rows.Next() {
		var (
			e                      domain.OrderPlacedEvent
			itemsJSON, addressJSON []byte
		)
		if err := rows.Scan(
			&e.SessionID,
			&e.OrderID,
			&e.EventID,
			&itemsJSON,
			&e.Subtotal,
			&e.Shipping,
			&e.Discount,
			&e.Total,
			&e.PaymentMethod,
			&addressJSON,
			&e.PlacedAt,
		); err != nil {
			return nil, fmt.Errorf("scan archived order: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &e.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		if err := json.Unmarshal(addressJSON, &e.ShippingAddress); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address: %w", err)
		}
		orders = append(orders, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return orders, nil
}

func (a *PostgresOrderArchive) Close() error {
	return a.db.Close()
}

func (a *PostgresOrderArchive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}
