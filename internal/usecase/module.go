package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/procurex/procurement/internal/config"
	"github.com/procurex/procurement/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewTenderLocks,
	NewAuthUseCase,
	NewTenderUseCase,
	NewBidUseCase,
	NewReconcileUseCase,
	newAwardUseCase,
)

type awardParams struct {
	fx.In

	Tenders    repository.TenderRepository
	Bids       repository.BidRepository
	Reconciler *ReconcileUseCase
	Locks      *TenderLocks
	Config     *config.Config
	Logger     *slog.Logger
}

func newAwardUseCase(p awardParams) *AwardUseCase {
	return NewAwardUseCase(p.Tenders, p.Bids, p.Reconciler, p.Locks, p.Config.AwardTimeout, p.Logger)
}
