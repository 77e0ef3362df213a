package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/usecase"
)

// TenderFacadeStub provides controllable behaviour for tender endpoints.
type TenderFacadeStub struct {
	CreateFn func(context.Context, string, string, string, []usecase.TenderDraftItem, *time.Time, int64) (*model.Tender, error)
	TendersFn func(context.Context) ([]model.Tender, error)
	TenderFn  func(context.Context, uuid.UUID) (*model.Tender, error)
	CloseFn   func(context.Context, uuid.UUID) (*model.Tender, error)
	AwardFn   func(context.Context, uuid.UUID, uuid.UUID, []model.AwardItem) (*model.AwardResult, error)
}

// CreateTender delegates to provided function or returns a default tender.
func (s TenderFacadeStub) CreateTender(ctx context.Context, title, description, storeName string, items []usecase.TenderDraftItem, deadline *time.Time, createdBy int64) (*model.Tender, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, title, description, storeName, items, deadline, createdBy)
	}
	return &model.Tender{ID: uuid.New(), Title: title, Description: description, StoreName: storeName, Status: model.TenderStatusActive, CreatedBy: createdBy}, nil
}

// Tenders returns predefined tender list.
func (s TenderFacadeStub) Tenders(ctx context.Context) ([]model.Tender, error) {
	if s.TendersFn != nil {
		return s.TendersFn(ctx)
	}
	return []model.Tender{{ID: uuid.New(), Title: "supplies", Status: model.TenderStatusActive}}, nil
}

// Tender returns a tender by identifier.
func (s TenderFacadeStub) Tender(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	if s.TenderFn != nil {
		return s.TenderFn(ctx, id)
	}
	return &model.Tender{ID: id, Title: "supplies", Status: model.TenderStatusActive}, nil
}

// CloseTender executes configured close handler.
func (s TenderFacadeStub) CloseTender(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	if s.CloseFn != nil {
		return s.CloseFn(ctx, id)
	}
	return &model.Tender{ID: id, Status: model.TenderStatusClosed}, nil
}

// AwardTender executes configured award handler.
func (s TenderFacadeStub) AwardTender(ctx context.Context, tenderID, bidID uuid.UUID, items []model.AwardItem) (*model.AwardResult, error) {
	if s.AwardFn != nil {
		return s.AwardFn(ctx, tenderID, bidID, items)
	}
	return &model.AwardResult{
		Tender: &model.Tender{ID: tenderID, Status: model.TenderStatusAwarded},
		Bid:    &model.Bid{ID: bidID, TenderID: tenderID, Status: model.BidStatusAccepted},
	}, nil
}

// BidFacadeStub simulates bid operations.
type BidFacadeStub struct {
	SubmitFn    func(context.Context, uuid.UUID, []usecase.BidDraftLine, string, model.ContactInfo) (*model.Bid, error)
	ListFn      func(context.Context, uuid.UUID) ([]model.Bid, error)
	SetStatusFn func(context.Context, uuid.UUID, model.BidStatus) error
}

// SubmitBid delegates to provided function or returns a pending bid.
func (s BidFacadeStub) SubmitBid(ctx context.Context, tenderID uuid.UUID, lines []usecase.BidDraftLine, note string, contact model.ContactInfo) (*model.Bid, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, tenderID, lines, note, contact)
	}
	return &model.Bid{ID: uuid.New(), TenderID: tenderID, Status: model.BidStatusPending, Note: note, ContactInfo: contact}, nil
}

// BidsForTender returns preconfigured bids.
func (s BidFacadeStub) BidsForTender(ctx context.Context, tenderID uuid.UUID) ([]model.Bid, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, tenderID)
	}
	return []model.Bid{{ID: uuid.New(), TenderID: tenderID, Status: model.BidStatusPending}}, nil
}

// SetBidStatus executes configured status handler.
func (s BidFacadeStub) SetBidStatus(ctx context.Context, bidID uuid.UUID, status model.BidStatus) error {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, bidID, status)
	}
	return nil
}

// StoreFacadeStub returns store ledgers.
type StoreFacadeStub struct {
	StoresFn func(context.Context) ([]model.Store, error)
}

// Stores returns preconfigured ledger list.
func (s StoreFacadeStub) Stores(ctx context.Context) ([]model.Store, error) {
	if s.StoresFn != nil {
		return s.StoresFn(ctx)
	}
	return []model.Store{{ID: 1, Name: "central"}}, nil
}

// ProcurementFacadeStub aggregates facade dependencies for HTTP layer tests.
type ProcurementFacadeStub struct {
	AuthFacadeStub
	TenderFacadeStub
	BidFacadeStub
	StoreFacadeStub
}

// TenderCloseCall stores information about CloseTender invocations.
type TenderCloseCall struct {
	ID uuid.UUID
}

// WatcherFacadeStub mimics deadline watcher interactions with the facade.
type WatcherFacadeStub struct {
	Batches   [][]model.Tender
	ExpiredFn func(context.Context, time.Time, int) ([]model.Tender, error)
	CloseFn   func(context.Context, uuid.UUID) (*model.Tender, error)
	Closes    []TenderCloseCall

	mu               sync.Mutex
	expiredCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WatcherFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WatcherFacadeStub) Unlock() { s.mu.Unlock() }

// ExpiredTenders returns batches from configured queue.
func (s *WatcherFacadeStub) ExpiredTenders(ctx context.Context, now time.Time, limit int) ([]model.Tender, error) {
	if s.ExpiredFn != nil {
		return s.ExpiredFn(ctx, now, limit)
	}
	call := atomic.AddInt32(&s.expiredCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CloseTender records close requests.
func (s *WatcherFacadeStub) CloseTender(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	if s.CloseFn != nil {
		return s.CloseFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closes = append(s.Closes, TenderCloseCall{ID: id})
	return &model.Tender{ID: id, Status: model.TenderStatusClosed}, nil
}
