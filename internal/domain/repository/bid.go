package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/procurex/procurement/internal/domain/model"
)

// BidRepository describes persistence operations with bids.
type BidRepository interface {
	Create(ctx context.Context, bid *model.Bid) (*model.Bid, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bid, error)
	ListByTender(ctx context.Context, tenderID uuid.UUID) ([]model.Bid, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.BidStatus) error
	// RejectAllExcept moves every bid of the tender that is not already
	// rejected to rejected, except the kept one. A nil keep rejects all.
	// Returns the number of bids transitioned; repeated calls are no-ops.
	RejectAllExcept(ctx context.Context, tenderID uuid.UUID, keep *uuid.UUID) (int64, error)
}
