package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/procurex/procurement/internal/domain/model"
)

// TenderRepository describes persistence operations with tenders.
type TenderRepository interface {
	Create(ctx context.Context, tender *model.Tender) (*model.Tender, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tender, error)
	List(ctx context.Context) ([]model.Tender, error)
	// TransitionStatus performs a single conditional update of the tender
	// status and reports whether this caller won the transition. A false
	// result with a nil error means the tender was not in the expected
	// source status at update time.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.TenderStatus) (bool, error)
	ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Tender, error)
}
