package repository

import (
	"context"

	"github.com/procurex/procurement/internal/domain/model"
)

// ProductRepository adjusts catalog stock levels. The catalog itself is
// owned elsewhere; only name lookup and additive increments are exposed.
type ProductRepository interface {
	GetByName(ctx context.Context, name string) (*model.Product, error)
	// IncrementStock applies an additive stock delta in a single statement
	// and reports whether a product with that name exists.
	IncrementStock(ctx context.Context, name string, delta int64) (bool, error)
}

// StoreRepository manages named store ledgers.
type StoreRepository interface {
	GetOrCreate(ctx context.Context, name string) (*model.Store, error)
	// UpsertItem adds delta to the named ledger line, creating it when absent.
	UpsertItem(ctx context.Context, storeName, itemName string, delta int64) error
	List(ctx context.Context) ([]model.Store, error)
}
