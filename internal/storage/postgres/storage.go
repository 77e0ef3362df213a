package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/procurex/procurement/internal/domain/repository"
)

// pool is the subset of pgxpool.Pool used by the storage. Kept as an
// interface so repository tests can substitute a pgxmock pool.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPool = func(ctx context.Context, cfg *pgxpool.Config) (pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

type adminRepository struct {
	storage *Storage
}

type tenderRepository struct {
	storage *Storage
}

type bidRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type storeRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	p, err := newPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: p, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		p.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Admins() repository.AdminRepository {
	return &adminRepository{storage: s}
}

func (s *Storage) Tenders() repository.TenderRepository {
	return &tenderRepository{storage: s}
}

func (s *Storage) Bids() repository.BidRepository {
	return &bidRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Stores() repository.StoreRepository {
	return &storeRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tenders (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL,
            store_name TEXT NOT NULL,
            status TEXT NOT NULL,
            deadline TIMESTAMPTZ,
            created_by BIGINT NOT NULL REFERENCES admins(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tender_items (
            id UUID PRIMARY KEY,
            tender_id UUID NOT NULL REFERENCES tenders(id),
            name TEXT NOT NULL,
            quantity BIGINT NOT NULL CHECK (quantity > 0),
            unit TEXT NOT NULL,
            position INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS bids (
            id UUID PRIMARY KEY,
            tender_id UUID NOT NULL REFERENCES tenders(id),
            contact_name TEXT NOT NULL,
            contact_email TEXT NOT NULL,
            contact_phone TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS bid_lines (
            bid_id UUID NOT NULL REFERENCES bids(id),
            item_id UUID NOT NULL,
            price NUMERIC NOT NULL CHECK (price >= 0),
            position INT NOT NULL,
            PRIMARY KEY (bid_id, item_id)
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            name TEXT PRIMARY KEY,
            stock NUMERIC NOT NULL DEFAULT 0 CHECK (stock >= 0)
        )`,
		`CREATE TABLE IF NOT EXISTS stores (
            id SERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS store_items (
            store_id BIGINT NOT NULL REFERENCES stores(id),
            name TEXT NOT NULL,
            quantity BIGINT NOT NULL CHECK (quantity >= 0),
            PRIMARY KEY (store_id, name)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_tender_items_tender ON tender_items(tender_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_bids_tender ON bids(tender_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_tenders_deadline ON tenders(deadline) WHERE status = 'active'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
