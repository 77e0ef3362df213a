package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/domain/repository"
)

// BidDraftLine is one priced line of a bid submission.
type BidDraftLine struct {
	ItemID uuid.UUID
	Price  decimal.Decimal
}

// BidUseCase owns bid creation and status transitions scoped to a tender.
type BidUseCase struct {
	tenders repository.TenderRepository
	bids    repository.BidRepository
}

// NewBidUseCase constructs BidUseCase.
func NewBidUseCase(tenders repository.TenderRepository, bids repository.BidRepository) *BidUseCase {
	return &BidUseCase{tenders: tenders, bids: bids}
}

// Submit records a pending bid against an active tender.
func (u *BidUseCase) Submit(ctx context.Context, tenderID uuid.UUID, lines []BidDraftLine, note string, contact model.ContactInfo) (*model.Bid, error) {
	tender, err := u.tenders.GetByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if tender.Status != model.TenderStatusActive {
		return nil, fmt.Errorf("%w: cannot bid on %s tender", domainErrors.ErrInvalidTransition, tender.Status)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one bid line is required", domainErrors.ErrValidation)
	}
	if contact.Name == "" || contact.Email == "" || contact.Phone == "" {
		return nil, fmt.Errorf("%w: contact name, email and phone are required", domainErrors.ErrValidation)
	}
	if !ValidateEmail(contact.Email) {
		return nil, fmt.Errorf("%w: invalid email format", domainErrors.ErrValidation)
	}
	if !ValidatePhone(contact.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number format", domainErrors.ErrValidation)
	}

	parsed := make([]model.BidLine, 0, len(lines))
	for _, line := range lines {
		if line.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", domainErrors.ErrValidation)
		}
		if _, ok := tender.ItemByID(line.ItemID); !ok {
			return nil, fmt.Errorf("%w: item %s does not belong to tender", domainErrors.ErrValidation, line.ItemID)
		}
		parsed = append(parsed, model.BidLine{ItemID: line.ItemID, Price: line.Price})
	}

	bid := &model.Bid{
		TenderID:    tenderID,
		ContactInfo: contact,
		Lines:       parsed,
		Note:        note,
		Status:      model.BidStatusPending,
	}
	return u.bids.Create(ctx, bid)
}

// ListByTender returns bids for the tender, newest first.
func (u *BidUseCase) ListByTender(ctx context.Context, tenderID uuid.UUID) ([]model.Bid, error) {
	return u.bids.ListByTender(ctx, tenderID)
}

// SetStatus moves a bid to accepted or rejected. Re-setting the same status
// is allowed and has no effect.
func (u *BidUseCase) SetStatus(ctx context.Context, bidID uuid.UUID, status model.BidStatus) error {
	if status != model.BidStatusAccepted && status != model.BidStatusRejected {
		return fmt.Errorf("%w: status must be accepted or rejected", domainErrors.ErrValidation)
	}
	return u.bids.SetStatus(ctx, bidID, status)
}

// RejectAllExcept rejects every undecided bid of the tender except keep.
func (u *BidUseCase) RejectAllExcept(ctx context.Context, tenderID uuid.UUID, keep *uuid.UUID) (int64, error) {
	return u.bids.RejectAllExcept(ctx, tenderID, keep)
}
