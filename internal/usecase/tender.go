package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/domain/repository"
)

// TenderDraftItem is one requested item of a tender creation request, with
// the unit still unparsed.
type TenderDraftItem struct {
	Name     string
	Quantity int64
	Unit     string
}

// TenderUseCase enforces the tender state machine and is the sole mutator
// of tender status.
type TenderUseCase struct {
	tenders repository.TenderRepository
	bids    repository.BidRepository
	locks   *TenderLocks
}

// NewTenderUseCase constructs TenderUseCase.
func NewTenderUseCase(tenders repository.TenderRepository, bids repository.BidRepository, locks *TenderLocks) *TenderUseCase {
	return &TenderUseCase{tenders: tenders, bids: bids, locks: locks}
}

// Create validates and publishes a new tender in active status.
func (u *TenderUseCase) Create(ctx context.Context, title, description, storeName string, items []TenderDraftItem, deadline *time.Time, createdBy int64) (*model.Tender, error) {
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domainErrors.ErrValidation)
	}
	if storeName == "" {
		return nil, fmt.Errorf("%w: store name is required", domainErrors.ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", domainErrors.ErrValidation)
	}

	parsed := make([]model.TenderItem, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			return nil, fmt.Errorf("%w: item name is required", domainErrors.ErrValidation)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q quantity must be at least 1", domainErrors.ErrValidation, item.Name)
		}
		unit, ok := model.ParseUnit(item.Unit)
		if !ok {
			return nil, fmt.Errorf("%w: item %q has unrecognized unit %q", domainErrors.ErrValidation, item.Name, item.Unit)
		}
		parsed = append(parsed, model.TenderItem{Name: item.Name, Quantity: item.Quantity, Unit: unit})
	}

	tender := &model.Tender{
		Title:       title,
		Description: description,
		Items:       parsed,
		StoreName:   storeName,
		Status:      model.TenderStatusActive,
		Deadline:    deadline,
		CreatedBy:   createdBy,
	}
	return u.tenders.Create(ctx, tender)
}

// Get fetches tender by identifier.
func (u *TenderUseCase) Get(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	return u.tenders.GetByID(ctx, id)
}

// List returns all tenders, newest first.
func (u *TenderUseCase) List(ctx context.Context) ([]model.Tender, error) {
	return u.tenders.List(ctx)
}

// Close terminally closes an active tender and rejects its remaining bids.
// Pending bids are resolved before the status flips so a closed tender is
// never observed with undecided bids.
func (u *TenderUseCase) Close(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	unlock := u.locks.Lock(id)
	defer unlock()

	tender, err := u.tenders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tender.Status != model.TenderStatusActive {
		return nil, fmt.Errorf("%w: tender is %s", domainErrors.ErrInvalidTransition, tender.Status)
	}

	if _, err := u.bids.RejectAllExcept(ctx, id, nil); err != nil {
		return nil, err
	}

	ok, err := u.tenders.TransitionStatus(ctx, id, model.TenderStatusActive, model.TenderStatusClosed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: tender %s was decided concurrently", domainErrors.ErrConflict, id)
	}

	tender.Status = model.TenderStatusClosed
	return tender, nil
}

// ListExpired returns active tenders past their deadline.
func (u *TenderUseCase) ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Tender, error) {
	return u.tenders.ListExpired(ctx, now, limit)
}
