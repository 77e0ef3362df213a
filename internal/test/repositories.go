package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
)

// AdminRepositoryStub stores admin accounts in-memory for tests.
type AdminRepositoryStub struct {
	Admins map[string]*model.Admin
	ByID   map[int64]*model.Admin
	Next   int64
	Err    error
}

// NewAdminRepositoryStub constructs stub repository with initialized maps.
func NewAdminRepositoryStub() *AdminRepositoryStub {
	return &AdminRepositoryStub{
		Admins: make(map[string]*model.Admin),
		ByID:   make(map[int64]*model.Admin),
		Next:   1,
	}
}

// Create registers admin unless already exists or stub has explicit error.
func (s *AdminRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Admins == nil {
		s.Admins = make(map[string]*model.Admin)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Admin)
	}
	if _, exists := s.Admins[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	admin := &model.Admin{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Admins[login] = admin
	s.ByID[admin.ID] = admin
	return admin, nil
}

// GetByLogin fetches admin by login or returns not found.
func (s *AdminRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.Admins[login]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches admin by identifier or returns not found.
func (s *AdminRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.ByID[id]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// StatusTransition records a single conditional tender status update.
type StatusTransition struct {
	ID   uuid.UUID
	From model.TenderStatus
	To   model.TenderStatus
}

// TenderRepositoryStub allows tests to customize behaviour.
type TenderRepositoryStub struct {
	CreateFn           func(context.Context, *model.Tender) (*model.Tender, error)
	GetByIDFn          func(context.Context, uuid.UUID) (*model.Tender, error)
	ListFn             func(context.Context) ([]model.Tender, error)
	TransitionStatusFn func(context.Context, uuid.UUID, model.TenderStatus, model.TenderStatus) (bool, error)
	ListExpiredFn      func(context.Context, time.Time, int) ([]model.Tender, error)

	Tender      *model.Tender
	Transitions []StatusTransition
	mu          sync.Mutex
}

// Create persists the draft or delegates to the override.
func (s *TenderRepositoryStub) Create(ctx context.Context, tender *model.Tender) (*model.Tender, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, tender)
	}
	stored := *tender
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	for i := range stored.Items {
		if stored.Items[i].ID == uuid.Nil {
			stored.Items[i].ID = uuid.New()
		}
	}
	s.mu.Lock()
	s.Tender = &stored
	s.mu.Unlock()
	return &stored, nil
}

// GetByID returns the stored tender or not found.
func (s *TenderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Tender, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Tender != nil && s.Tender.ID == id {
		copied := *s.Tender
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns the stored tender as a single-element slice.
func (s *TenderRepositoryStub) List(ctx context.Context) ([]model.Tender, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Tender == nil {
		return nil, nil
	}
	return []model.Tender{*s.Tender}, nil
}

// TransitionStatus records the attempt and applies it to the stored tender.
func (s *TenderRepositoryStub) TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.TenderStatus) (bool, error) {
	if s.TransitionStatusFn != nil {
		return s.TransitionStatusFn(ctx, id, from, to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transitions = append(s.Transitions, StatusTransition{ID: id, From: from, To: to})
	if s.Tender == nil || s.Tender.ID != id || s.Tender.Status != from {
		return false, nil
	}
	s.Tender.Status = to
	return true, nil
}

// ListExpired delegates to the override or returns nothing.
func (s *TenderRepositoryStub) ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Tender, error) {
	if s.ListExpiredFn != nil {
		return s.ListExpiredFn(ctx, now, limit)
	}
	return nil, nil
}

// BidStatusCall records a single SetStatus invocation.
type BidStatusCall struct {
	ID     uuid.UUID
	Status model.BidStatus
}

// RejectCall records a single RejectAllExcept invocation.
type RejectCall struct {
	TenderID uuid.UUID
	Keep     *uuid.UUID
}

// BidRepositoryStub allows tests to customize behaviour.
type BidRepositoryStub struct {
	CreateFn          func(context.Context, *model.Bid) (*model.Bid, error)
	GetByIDFn         func(context.Context, uuid.UUID) (*model.Bid, error)
	ListByTenderFn    func(context.Context, uuid.UUID) ([]model.Bid, error)
	SetStatusFn       func(context.Context, uuid.UUID, model.BidStatus) error
	RejectAllExceptFn func(context.Context, uuid.UUID, *uuid.UUID) (int64, error)

	Bid         *model.Bid
	StatusCalls []BidStatusCall
	RejectCalls []RejectCall
	mu          sync.Mutex
}

// Create persists the bid or delegates to the override.
func (s *BidRepositoryStub) Create(ctx context.Context, bid *model.Bid) (*model.Bid, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, bid)
	}
	stored := *bid
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	s.mu.Lock()
	s.Bid = &stored
	s.mu.Unlock()
	return &stored, nil
}

// GetByID returns the stored bid or not found.
func (s *BidRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Bid, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Bid != nil && s.Bid.ID == id {
		copied := *s.Bid
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByTender returns the stored bid when it belongs to the tender.
func (s *BidRepositoryStub) ListByTender(ctx context.Context, tenderID uuid.UUID) ([]model.Bid, error) {
	if s.ListByTenderFn != nil {
		return s.ListByTenderFn(ctx, tenderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Bid != nil && s.Bid.TenderID == tenderID {
		return []model.Bid{*s.Bid}, nil
	}
	return nil, nil
}

// SetStatus records the call and applies it to the stored bid.
func (s *BidRepositoryStub) SetStatus(ctx context.Context, id uuid.UUID, status model.BidStatus) error {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StatusCalls = append(s.StatusCalls, BidStatusCall{ID: id, Status: status})
	if s.Bid != nil && s.Bid.ID == id {
		s.Bid.Status = status
		return nil
	}
	return domainErrors.ErrNotFound
}

// RejectAllExcept records the call for later inspection.
func (s *BidRepositoryStub) RejectAllExcept(ctx context.Context, tenderID uuid.UUID, keep *uuid.UUID) (int64, error) {
	if s.RejectAllExceptFn != nil {
		return s.RejectAllExceptFn(ctx, tenderID, keep)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RejectCalls = append(s.RejectCalls, RejectCall{TenderID: tenderID, Keep: keep})
	return 0, nil
}

// StockIncrement records an additive catalog stock update.
type StockIncrement struct {
	Name  string
	Delta int64
}

// ProductRepositoryStub tracks additive stock updates. Names listed in
// Known resolve to catalog products; with a nil Known every name matches.
type ProductRepositoryStub struct {
	GetByNameFn      func(context.Context, string) (*model.Product, error)
	IncrementStockFn func(context.Context, string, int64) (bool, error)

	Known      map[string]bool
	Increments []StockIncrement
	mu         sync.Mutex
}

// GetByName returns a known product or not found.
func (s *ProductRepositoryStub) GetByName(ctx context.Context, name string) (*model.Product, error) {
	if s.GetByNameFn != nil {
		return s.GetByNameFn(ctx, name)
	}
	if s.Known == nil || s.Known[name] {
		return &model.Product{Name: name}, nil
	}
	return nil, domainErrors.ErrNotFound
}

// IncrementStock records the delta and reports whether the product exists.
func (s *ProductRepositoryStub) IncrementStock(ctx context.Context, name string, delta int64) (bool, error) {
	if s.IncrementStockFn != nil {
		return s.IncrementStockFn(ctx, name, delta)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Increments = append(s.Increments, StockIncrement{Name: name, Delta: delta})
	if s.Known == nil {
		return true, nil
	}
	return s.Known[name], nil
}

// LedgerUpsert records an additive store ledger update.
type LedgerUpsert struct {
	Store string
	Item  string
	Delta int64
}

// StoreRepositoryStub tracks store creation and ledger upserts.
type StoreRepositoryStub struct {
	GetOrCreateFn func(context.Context, string) (*model.Store, error)
	UpsertItemFn  func(context.Context, string, string, int64) error
	ListFn        func(context.Context) ([]model.Store, error)

	Created []string
	Upserts []LedgerUpsert
	mu      sync.Mutex
}

// GetOrCreate records the store name and returns a store for it.
func (s *StoreRepositoryStub) GetOrCreate(ctx context.Context, name string) (*model.Store, error) {
	if s.GetOrCreateFn != nil {
		return s.GetOrCreateFn(ctx, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Created = append(s.Created, name)
	return &model.Store{ID: int64(len(s.Created)), Name: name}, nil
}

// UpsertItem records the ledger update.
func (s *StoreRepositoryStub) UpsertItem(ctx context.Context, storeName, itemName string, delta int64) error {
	if s.UpsertItemFn != nil {
		return s.UpsertItemFn(ctx, storeName, itemName, delta)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Upserts = append(s.Upserts, LedgerUpsert{Store: storeName, Item: itemName, Delta: delta})
	return nil
}

// List returns preconfigured stores.
func (s *StoreRepositoryStub) List(ctx context.Context) ([]model.Store, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}
