package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
)

const bidColumns = `id, tender_id, contact_name, contact_email, contact_phone, note, status, created_at, updated_at`

func scanBid(row pgx.Row, b *model.Bid) error {
	return row.Scan(&b.ID, &b.TenderID, &b.ContactInfo.Name, &b.ContactInfo.Email, &b.ContactInfo.Phone, &b.Note, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func (r *bidRepository) Create(ctx context.Context, bid *model.Bid) (*model.Bid, error) {
	out := *bid
	out.ID = uuid.New()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertBid = `INSERT INTO bids (id, tender_id, contact_name, contact_email, contact_phone, note, status)
                           VALUES ($1, $2, $3, $4, $5, $6, $7)
                           RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, insertBid,
			out.ID, out.TenderID, out.ContactInfo.Name, out.ContactInfo.Email, out.ContactInfo.Phone, out.Note, out.Status,
		).Scan(&out.CreatedAt, &out.UpdatedAt)
		if err != nil {
			return err
		}

		const insertLine = `INSERT INTO bid_lines (bid_id, item_id, price, position) VALUES ($1, $2, $3, $4)`
		for i, line := range out.Lines {
			if _, err := tx.Exec(ctx, insertLine, out.ID, line.ItemID, line.Price, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *bidRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id=$1`
	var bid model.Bid
	if err := scanBid(r.storage.pool.QueryRow(ctx, query, id), &bid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `SELECT item_id, price FROM bid_lines WHERE bid_id=$1 ORDER BY position`
	rows, err := r.storage.pool.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line model.BidLine
		if err := rows.Scan(&line.ItemID, &line.Price); err != nil {
			return nil, err
		}
		bid.Lines = append(bid.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *bidRepository) ListByTender(ctx context.Context, tenderID uuid.UUID) ([]model.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE tender_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, tenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Bid
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var b model.Bid
		if err := scanBid(rows, &b); err != nil {
			return nil, err
		}
		byID[b.ID] = len(result)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return result, nil
	}

	const linesQuery = `SELECT l.bid_id, l.item_id, l.price
                        FROM bid_lines l
                        JOIN bids b ON b.id = l.bid_id
                        WHERE b.tender_id=$1
                        ORDER BY l.bid_id, l.position`
	lineRows, err := r.storage.pool.Query(ctx, linesQuery, tenderID)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var bidID uuid.UUID
		var line model.BidLine
		if err := lineRows.Scan(&bidID, &line.ItemID, &line.Price); err != nil {
			return nil, err
		}
		if idx, ok := byID[bidID]; ok {
			result[idx].Lines = append(result[idx].Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *bidRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.BidStatus) error {
	const query = `UPDATE bids SET status=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *bidRepository) RejectAllExcept(ctx context.Context, tenderID uuid.UUID, keep *uuid.UUID) (int64, error) {
	const query = `UPDATE bids SET status=$3, updated_at=NOW()
                   WHERE tender_id=$1 AND status <> $3 AND ($2::uuid IS NULL OR id <> $2)`
	tag, err := r.storage.pool.Exec(ctx, query, tenderID, keep, model.BidStatusRejected)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
