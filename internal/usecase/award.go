package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/domain/repository"
)

// AwardUseCase executes the award protocol: one bid wins, every sibling is
// rejected, inventory is reconciled, and the tender terminally flips to
// awarded. The aggregates involved are independently stored, so the
// protocol relies on ordering and idempotent steps rather than a single
// transaction: bid resolution happens before inventory effects, and the
// tender status changes last via a conditional update. A crash mid-way
// leaves the tender active and the whole call retryable.
type AwardUseCase struct {
	tenders    repository.TenderRepository
	bids       repository.BidRepository
	reconciler *ReconcileUseCase
	locks      *TenderLocks
	timeout    time.Duration
	logger     *slog.Logger
}

// NewAwardUseCase constructs AwardUseCase. A non-positive timeout disables
// the protocol deadline.
func NewAwardUseCase(tenders repository.TenderRepository, bids repository.BidRepository, reconciler *ReconcileUseCase, locks *TenderLocks, timeout time.Duration, logger *slog.Logger) *AwardUseCase {
	return &AwardUseCase{
		tenders:    tenders,
		bids:       bids,
		reconciler: reconciler,
		locks:      locks,
		timeout:    timeout,
		logger:     logger,
	}
}

// Award decides the tender in favor of the given bid using the quantities
// supplied by the caller. Item names must correspond to the tender's items;
// quantities are taken as submitted.
func (u *AwardUseCase) Award(ctx context.Context, tenderID, bidID uuid.UUID, items []model.AwardItem) (*model.AwardResult, error) {
	unlock := u.locks.Lock(tenderID)
	defer unlock()

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	tender, err := u.tenders.GetByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if tender.Status != model.TenderStatusActive {
		return nil, fmt.Errorf("%w: tender is %s", domainErrors.ErrInvalidTransition, tender.Status)
	}

	bid, err := u.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.TenderID != tenderID {
		return nil, fmt.Errorf("%w: bid %s does not belong to tender %s", domainErrors.ErrValidation, bidID, tenderID)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: award items are required", domainErrors.ErrValidation)
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q quantity must be at least 1", domainErrors.ErrValidation, item.Name)
		}
		if !tender.HasItemNamed(item.Name) {
			return nil, fmt.Errorf("%w: item %q is not part of the tender", domainErrors.ErrValidation, item.Name)
		}
	}

	// Siblings are rejected before any financial effect so a racing accept
	// cannot slip in, and before the winner is marked so the tender never
	// holds two accepted bids.
	if _, err := u.bids.RejectAllExcept(ctx, tenderID, &bidID); err != nil {
		return nil, err
	}
	if err := u.bids.SetStatus(ctx, bidID, model.BidStatusAccepted); err != nil {
		return nil, err
	}

	unresolved, err := u.reconciler.ReconcileAward(ctx, items, tender.StoreName)
	if err != nil {
		return nil, err
	}

	won, err := u.tenders.TransitionStatus(ctx, tenderID, model.TenderStatusActive, model.TenderStatusAwarded)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("%w: tender %s was decided concurrently", domainErrors.ErrConflict, tenderID)
	}

	u.logger.Info("tender awarded",
		slog.String("tender", tenderID.String()),
		slog.String("bid", bidID.String()),
		slog.Int("unresolved_items", len(unresolved)),
	)

	tender.Status = model.TenderStatusAwarded
	bid.Status = model.BidStatusAccepted
	return &model.AwardResult{Tender: tender, Bid: bid, UnresolvedItems: unresolved}, nil
}
