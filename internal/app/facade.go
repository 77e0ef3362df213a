package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/usecase"
)

// ProcurementFacade aggregates the use cases behind a single application
// surface consumed by HTTP handlers and the deadline watcher.
type ProcurementFacade struct {
	auth       *usecase.AuthUseCase
	tenders    *usecase.TenderUseCase
	bids       *usecase.BidUseCase
	awards     *usecase.AwardUseCase
	reconciler *usecase.ReconcileUseCase
}

func NewProcurementFacade(auth *usecase.AuthUseCase, tenders *usecase.TenderUseCase, bids *usecase.BidUseCase, awards *usecase.AwardUseCase, reconciler *usecase.ReconcileUseCase) *ProcurementFacade {
	return &ProcurementFacade{auth: auth, tenders: tenders, bids: bids, awards: awards, reconciler: reconciler}
}

func (f *ProcurementFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *ProcurementFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *ProcurementFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ProcurementFacade) CreateTender(ctx context.Context, title, description, storeName string, items []usecase.TenderDraftItem, deadline *time.Time, createdBy int64) (*model.Tender, error) {
	return f.tenders.Create(ctx, title, description, storeName, items, deadline, createdBy)
}

func (f *ProcurementFacade) Tenders(ctx context.Context) ([]model.Tender, error) {
	return f.tenders.List(ctx)
}

func (f *ProcurementFacade) Tender(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	return f.tenders.Get(ctx, id)
}

func (f *ProcurementFacade) CloseTender(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	return f.tenders.Close(ctx, id)
}

func (f *ProcurementFacade) AwardTender(ctx context.Context, tenderID, bidID uuid.UUID, items []model.AwardItem) (*model.AwardResult, error) {
	return f.awards.Award(ctx, tenderID, bidID, items)
}

func (f *ProcurementFacade) ExpiredTenders(ctx context.Context, now time.Time, limit int) ([]model.Tender, error) {
	return f.tenders.ListExpired(ctx, now, limit)
}

func (f *ProcurementFacade) SubmitBid(ctx context.Context, tenderID uuid.UUID, lines []usecase.BidDraftLine, note string, contact model.ContactInfo) (*model.Bid, error) {
	return f.bids.Submit(ctx, tenderID, lines, note, contact)
}

func (f *ProcurementFacade) BidsForTender(ctx context.Context, tenderID uuid.UUID) ([]model.Bid, error) {
	return f.bids.ListByTender(ctx, tenderID)
}

func (f *ProcurementFacade) SetBidStatus(ctx context.Context, bidID uuid.UUID, status model.BidStatus) error {
	return f.bids.SetStatus(ctx, bidID, status)
}

func (f *ProcurementFacade) Stores(ctx context.Context) ([]model.Store, error) {
	return f.reconciler.ListStores(ctx)
}
