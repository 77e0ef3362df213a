package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/procurex/procurement/internal/config"
	"github.com/procurex/procurement/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.AdminRepository { return s.Admins() },
		func(s *Storage) repository.TenderRepository { return s.Tenders() },
		func(s *Storage) repository.BidRepository { return s.Bids() },
		func(s *Storage) repository.ProductRepository { return s.Products() },
		func(s *Storage) repository.StoreRepository { return s.Stores() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
