package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// TenderFacade encapsulates tender lifecycle operations exposed via HTTP.
type TenderFacade interface {
	CreateTender(ctx context.Context, title, description, storeName string, items []usecase.TenderDraftItem, deadline *time.Time, createdBy int64) (*model.Tender, error)
	Tenders(ctx context.Context) ([]model.Tender, error)
	Tender(ctx context.Context, id uuid.UUID) (*model.Tender, error)
	CloseTender(ctx context.Context, id uuid.UUID) (*model.Tender, error)
	AwardTender(ctx context.Context, tenderID, bidID uuid.UUID, items []model.AwardItem) (*model.AwardResult, error)
}

// BidFacade provides bid submission and decision operations.
type BidFacade interface {
	SubmitBid(ctx context.Context, tenderID uuid.UUID, lines []usecase.BidDraftLine, note string, contact model.ContactInfo) (*model.Bid, error)
	BidsForTender(ctx context.Context, tenderID uuid.UUID) ([]model.Bid, error)
	SetBidStatus(ctx context.Context, bidID uuid.UUID, status model.BidStatus) error
}

// StoreFacade exposes store ledgers.
type StoreFacade interface {
	Stores(ctx context.Context) ([]model.Store, error)
}

// ProcurementFacade aggregates the full set of operations used across handlers.
type ProcurementFacade interface {
	AuthFacade
	TenderFacade
	BidFacade
	StoreFacade
}
