package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/edersonsgoncalves/acoes-backend/internal/brapi"
	"github.com/edersonsgoncalves/acoes-backend/internal/repository"
	"github.com/edersonsgoncalves/acoes-backend/internal/service"
	"github.com/edersonsgoncalves/acoes-backend/internal/tickersearch"
)

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	return NewTestAssetServiceWithSearcher(t, db, nil)
}

// NewTestAssetServiceWithSearcher creates an AssetService with a mock ticker
// searcher, for testing lookups without real API calls.
func NewTestAssetServiceWithSearcher(t *testing.T, db *sql.DB, searcher tickersearch.Searcher) *service.AssetService {
	t.Helper()

	assetRepo := repository.NewAssetRepository(db)

	return service.NewAssetService(assetRepo, searcher)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)

	return service.NewPortfolioService(portfolioRepo)
}

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	operationRepo := repository.NewOperationRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	return service.NewPositionService(db, operationRepo, positionRepo)
}

func NewTestOperationService(t *testing.T, db *sql.DB) *service.OperationService {
	t.Helper()

	operationRepo := repository.NewOperationRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	positionService := NewTestPositionService(t, db)

	return service.NewOperationService(
		db,
		operationRepo,
		assetRepo,
		portfolioRepo,
		positionService,
	)
}

// NewTestDashboardService creates a DashboardService with a mock quoter,
// for testing dashboards without real API calls.
func NewTestDashboardService(t *testing.T, db *sql.DB, quoter brapi.Quoter) *service.DashboardService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	return service.NewDashboardService(portfolioRepo, positionRepo, quoter)
}

func NewTestSettingService(t *testing.T, db *sql.DB) *service.SettingService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)

	return service.NewSettingService(settingRepo, nil)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeTicker generates a unique B3-style ticker symbol for testing.
//
// Example usage:
//
//	ticker := testutil.MakeTicker("PETR")
//	// Returns: "PETRA4B"
func MakeTicker(base string) string {
	if base == "" {
		base = "TST"
	}
	return base + randomAlphanumeric(3)
}

// MakePortfolioName generates a unique portfolio name for testing.
//
// Example usage:
//
//	name := testutil.MakePortfolioName("MyPortfolio")
//	// Returns: "MyPortfolio ABC123"
func MakePortfolioName(base string) string {
	if base == "" {
		base = "Portfolio"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
