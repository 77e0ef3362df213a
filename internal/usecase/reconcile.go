package usecase

import (
	"context"
	"log/slog"

	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/domain/repository"
)

// ReconcileUseCase applies awarded quantities back into the product catalog
// and the named store ledger.
type ReconcileUseCase struct {
	products repository.ProductRepository
	stores   repository.StoreRepository
	logger   *slog.Logger
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(products repository.ProductRepository, stores repository.StoreRepository, logger *slog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{products: products, stores: stores, logger: logger}
}

// ReconcileAward increases catalog stock and store item quantities for each
// awarded item. Items without a matching catalog product are skipped and
// reported back; they never fail the batch. The store is created on first
// use.
func (u *ReconcileUseCase) ReconcileAward(ctx context.Context, items []model.AwardItem, storeName string) ([]string, error) {
	var unresolved []string
	for _, item := range items {
		matched, err := u.products.IncrementStock(ctx, item.Name, item.Quantity)
		if err != nil {
			return nil, err
		}
		if !matched {
			u.logger.Warn("awarded item has no catalog product",
				slog.String("item", item.Name),
				slog.Int64("quantity", item.Quantity),
			)
			unresolved = append(unresolved, item.Name)
		}
	}

	if _, err := u.stores.GetOrCreate(ctx, storeName); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := u.stores.UpsertItem(ctx, storeName, item.Name, item.Quantity); err != nil {
			return nil, err
		}
	}

	return unresolved, nil
}

// ListStores returns every store with its ledger.
func (u *ReconcileUseCase) ListStores(ctx context.Context) ([]model.Store, error) {
	return u.stores.List(ctx)
}
