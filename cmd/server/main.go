package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/edersonsgoncalves/acoes-backend/internal/api"
	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/brapi"
	"github.com/edersonsgoncalves/acoes-backend/internal/config"
	"github.com/edersonsgoncalves/acoes-backend/internal/database"
	"github.com/edersonsgoncalves/acoes-backend/internal/repository"
	"github.com/edersonsgoncalves/acoes-backend/internal/secrets"
	"github.com/edersonsgoncalves/acoes-backend/internal/service"
	"github.com/edersonsgoncalves/acoes-backend/internal/tickersearch"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Settings store; the fernet codec is optional and only needed for
	// encrypted values.
	var codec *secrets.Codec
	if cfg.Providers.FernetKey != "" {
		codec, err = secrets.NewCodec(cfg.Providers.FernetKey)
		if err != nil {
			log.Fatalf("Failed to load fernet key: %v", err)
		}
	}
	settingService := service.NewSettingService(settingRepo, codec)

	// Create services
	systemService := service.NewSystemService(db)
	assetService := service.NewAssetService(assetRepo, newSearcher(cfg))
	portfolioService := service.NewPortfolioService(portfolioRepo)
	positionService := service.NewPositionService(db, operationRepo, positionRepo)
	operationService := service.NewOperationService(
		db,
		operationRepo,
		assetRepo,
		portfolioRepo,
		positionService,
	)
	quoter := brapi.NewClient(cfg.Providers.BrapiBaseURL, resolveBrapiToken(cfg, settingService))
	dashboardService := service.NewDashboardService(portfolioRepo, positionRepo, quoter)

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Asset:     assetService,
		Portfolio: portfolioService,
		Operation: operationService,
		Position:  positionService,
		Dashboard: dashboardService,
		Setting:   settingService,
	}, cfg)

	// Warm the quote cache for held tickers before the market opens.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 9 * * 1-5", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		dashboardService.WarmQuoteCache(ctx)
	}); err != nil {
		log.Fatalf("Failed to schedule quote cache warmup: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newSearcher returns the ticker lookup client, or nil when no SerpAPI key
// is configured. A nil searcher degrades lookups to "not found".
func newSearcher(cfg *config.Config) tickersearch.Searcher {
	if cfg.Providers.SerpAPIKey == "" {
		log.Println("SERPAPI_KEY not set; ticker lookup disabled")
		return nil
	}
	return tickersearch.NewClient(cfg.Providers.SerpAPIKey)
}

// resolveBrapiToken prefers the environment token and falls back to the
// encrypted setting store. An empty token is valid for brapi's free tier.
func resolveBrapiToken(cfg *config.Config, settings *service.SettingService) string {
	if cfg.Providers.BrapiToken != "" {
		return cfg.Providers.BrapiToken
	}

	token, err := settings.PlainValue(service.SettingKeyBrapiToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			log.Printf("Failed to read %s from settings: %v", service.SettingKeyBrapiToken, err)
		}
		return ""
	}
	return token
}
