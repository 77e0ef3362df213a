package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
)

// --- ProductRepository implementation ---

func (r *productRepository) GetByName(ctx context.Context, name string) (*model.Product, error) {
	const query = `SELECT name, stock FROM products WHERE name=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, name).Scan(&p.Name, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// IncrementStock adds delta to the product stock in one statement so
// concurrent awards touching the same product never lose updates.
func (r *productRepository) IncrementStock(ctx context.Context, name string, delta int64) (bool, error) {
	const query = `UPDATE products SET stock = stock + $2 WHERE name=$1`
	tag, err := r.storage.pool.Exec(ctx, query, name, delta)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// --- StoreRepository implementation ---

func (r *storeRepository) GetOrCreate(ctx context.Context, name string) (*model.Store, error) {
	const query = `INSERT INTO stores (name) VALUES ($1)
                   ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
                   RETURNING id, name, created_at`
	var store model.Store
	if err := r.storage.pool.QueryRow(ctx, query, name).Scan(&store.ID, &store.Name, &store.CreatedAt); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	store.Items = items
	return &store, nil
}

func (r *storeRepository) UpsertItem(ctx context.Context, storeName, itemName string, delta int64) error {
	const query = `INSERT INTO store_items (store_id, name, quantity)
                   SELECT id, $2, $3 FROM stores WHERE name=$1
                   ON CONFLICT (store_id, name) DO UPDATE
                   SET quantity = store_items.quantity + EXCLUDED.quantity`
	tag, err := r.storage.pool.Exec(ctx, query, storeName, itemName, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *storeRepository) List(ctx context.Context) ([]model.Store, error) {
	const query = `SELECT id, name, created_at FROM stores ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Store
	byID := make(map[int64]int)
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		byID[s.ID] = len(result)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return result, nil
	}

	const itemsQuery = `SELECT store_id, name, quantity FROM store_items ORDER BY store_id, name`
	itemRows, err := r.storage.pool.Query(ctx, itemsQuery)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var storeID int64
		var item model.StoreItem
		if err := itemRows.Scan(&storeID, &item.Name, &item.Quantity); err != nil {
			return nil, err
		}
		if idx, ok := byID[storeID]; ok {
			result[idx].Items = append(result[idx].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *storeRepository) loadItems(ctx context.Context, storeID int64) ([]model.StoreItem, error) {
	const query = `SELECT name, quantity FROM store_items WHERE store_id=$1 ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.StoreItem
	for rows.Next() {
		var item model.StoreItem
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
