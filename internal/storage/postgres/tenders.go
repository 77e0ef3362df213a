package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
)

const tenderColumns = `id, title, description, store_name, status, deadline, created_by, created_at, updated_at`

func scanTender(row pgx.Row, t *model.Tender) error {
	return row.Scan(&t.ID, &t.Title, &t.Description, &t.StoreName, &t.Status, &t.Deadline, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
}

func (r *tenderRepository) Create(ctx context.Context, tender *model.Tender) (*model.Tender, error) {
	out := *tender
	out.ID = uuid.New()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertTender = `INSERT INTO tenders (id, title, description, store_name, status, deadline, created_by)
                              VALUES ($1, $2, $3, $4, $5, $6, $7)
                              RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, insertTender,
			out.ID, out.Title, out.Description, out.StoreName, out.Status, out.Deadline, out.CreatedBy,
		).Scan(&out.CreatedAt, &out.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO tender_items (id, tender_id, name, quantity, unit, position)
                            VALUES ($1, $2, $3, $4, $5, $6)`
		items := make([]model.TenderItem, len(tender.Items))
		for i, item := range tender.Items {
			item.ID = uuid.New()
			if _, err := tx.Exec(ctx, insertItem, item.ID, out.ID, item.Name, item.Quantity, item.Unit, i); err != nil {
				return err
			}
			items[i] = item
		}
		out.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *tenderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE id=$1`
	var tender model.Tender
	if err := scanTender(r.storage.pool.QueryRow(ctx, query, id), &tender); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	tender.Items = items
	return &tender, nil
}

func (r *tenderRepository) List(ctx context.Context) ([]model.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Tender
	for rows.Next() {
		var t model.Tender
		if err := scanTender(rows, &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return result, nil
	}

	const itemsQuery = `SELECT tender_id, id, name, quantity, unit
                        FROM tender_items ORDER BY tender_id, position`
	itemRows, err := r.storage.pool.Query(ctx, itemsQuery)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	byTender := make(map[uuid.UUID][]model.TenderItem)
	for itemRows.Next() {
		var tenderID uuid.UUID
		var item model.TenderItem
		if err := itemRows.Scan(&tenderID, &item.ID, &item.Name, &item.Quantity, &item.Unit); err != nil {
			return nil, err
		}
		byTender[tenderID] = append(byTender[tenderID], item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Items = byTender[result[i].ID]
	}
	return result, nil
}

func (r *tenderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.TenderStatus) (bool, error) {
	const query = `UPDATE tenders SET status=$3, updated_at=NOW() WHERE id=$1 AND status=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListExpired returns active tenders whose deadline has passed. Item lists
// are not loaded; callers close through the lifecycle path which re-reads.
func (r *tenderRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders
              WHERE status='active' AND deadline IS NOT NULL AND deadline <= $1
              ORDER BY deadline LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Tender
	for rows.Next() {
		var t model.Tender
		if err := scanTender(rows, &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *tenderRepository) loadItems(ctx context.Context, tenderID uuid.UUID) ([]model.TenderItem, error) {
	const query = `SELECT id, name, quantity, unit FROM tender_items WHERE tender_id=$1 ORDER BY position`
	rows, err := r.storage.pool.Query(ctx, query, tenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.TenderItem
	for rows.Next() {
		var item model.TenderItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
