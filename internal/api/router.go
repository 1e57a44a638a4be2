// Package api wires the HTTP surface: router, handlers, middleware and
// response helpers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/handlers"
	custommiddleware "github.com/edersonsgoncalves/acoes-backend/internal/api/middleware"
	"github.com/edersonsgoncalves/acoes-backend/internal/config"
	"github.com/edersonsgoncalves/acoes-backend/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System    *service.SystemService
	Asset     *service.AssetService
	Portfolio *service.PortfolioService
	Operation *service.OperationService
	Position  *service.PositionService
	Dashboard *service.DashboardService
	Setting   *service.SettingService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
		})

		assetHandler := handlers.NewAssetHandler(svc.Asset)
		r.Route("/asset", func(r chi.Router) {
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)
			r.Get("/lookup/{ticker}", assetHandler.LookupTicker)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})
		r.Get("/operation-type", assetHandler.OperationTypes)

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
			})
		})

		r.Route("/operation", func(r chi.Router) {
			operationHandler := handlers.NewOperationHandler(svc.Operation)
			r.Get("/", operationHandler.AllOperations)
			r.Post("/", operationHandler.CreateOperation)
			r.Route("/portfolio/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", operationHandler.OperationsPerPortfolio)
			})
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", operationHandler.GetOperation)
				r.Put("/", operationHandler.UpdateOperation)
				r.Delete("/", operationHandler.DeleteOperation)
			})
		})

		positionHandler := handlers.NewPositionHandler(svc.Position, svc.Dashboard)
		r.Route("/position/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", positionHandler.PositionsPerPortfolio)
		})
		r.Route("/dashboard/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", positionHandler.Dashboard)
		})

		r.Route("/setting", func(r chi.Router) {
			settingHandler := handlers.NewSettingHandler(svc.Setting)
			r.Get("/{key}", settingHandler.GetSetting)
			r.Put("/{key}", settingHandler.PutSetting)
		})
	})

	return r
}
