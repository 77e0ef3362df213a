package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/procurex/procurement/internal/server/http/handlers"
	"github.com/procurex/procurement/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. Tender reads and
// bid submission are public; every mutation of the tender lifecycle requires
// an authenticated admin.
func Setup(facade handlers.ProcurementFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	tenderHandler := handlers.NewTenderHandler(facade)
	bidHandler := handlers.NewBidHandler(facade)
	storeHandler := handlers.NewStoreHandler(facade)

	api := engine.Group("/api")

	admin := api.Group("/admin")
	admin.POST("/register", authHandler.Register)
	admin.POST("/login", authHandler.Login)

	api.GET("/tenders", tenderHandler.List)
	api.GET("/tenders/:id", tenderHandler.Get)
	api.POST("/tenders/:id/bids", bidHandler.Submit)

	adminAuth := api.Group("")
	adminAuth.Use(middleware.AuthRequired(facade))
	adminAuth.POST("/tenders", tenderHandler.Create)
	adminAuth.POST("/tenders/:id/close", tenderHandler.Close)
	adminAuth.POST("/tenders/:id/award", tenderHandler.Award)
	adminAuth.GET("/tenders/:id/bids", bidHandler.ListByTender)
	adminAuth.PATCH("/bids/:id/status", bidHandler.SetStatus)
	adminAuth.GET("/stores", storeHandler.List)

	return engine
}
