package di

import (
	"go.uber.org/fx"

	"github.com/procurex/procurement/internal/app"
	"github.com/procurex/procurement/internal/config"
	"github.com/procurex/procurement/internal/logger"
	"github.com/procurex/procurement/internal/pkg/auth"
	"github.com/procurex/procurement/internal/server/http/handlers"
	"github.com/procurex/procurement/internal/server/http/router"
	"github.com/procurex/procurement/internal/storage/postgres"
	"github.com/procurex/procurement/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(f *app.ProcurementFacade) handlers.ProcurementFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
