package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/edersonsgoncalves/acoes-backend/internal/testutil"
)

// TestPositionService_GetPosition tests position reads.
//
// WHY: A pair without history is a valid empty position, not an error;
// callers rely on the zero value to render empty portfolios.
func TestPositionService_GetPosition(t *testing.T) {
	t.Run("absent pair returns the zero position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		// Execute
		position, err := svc.GetPosition(portfolio.ID, asset.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetPosition() returned unexpected error: %v", err)
		}
		assertPosition(t, position, "0", "0")
		if position.PortfolioID != portfolio.ID || position.AssetID != asset.ID {
			t.Errorf("Expected pair %s/%s, got %s/%s",
				portfolio.ID, asset.ID, position.PortfolioID, position.AssetID)
		}
	})
}

// TestPositionService_Recompute tests the standalone full replay.
//
// WHY: Recompute is the repair path: given any stored position, replaying
// the pair's history must converge to the same state, including ties on
// the same date broken by creation time.
func TestPositionService_Recompute(t *testing.T) {
	t.Run("rebuilds the position from raw history", func(t *testing.T) {
		// Setup: rows written directly, bypassing the service.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		testutil.NewOperation(portfolio.ID, asset.ID).
			Buy().WithDate("2024-01-10").WithQuantity("100").WithUnitPrice("10").Build(t, db)
		testutil.NewOperation(portfolio.ID, asset.ID).
			Sell().WithDate("2024-02-10").WithQuantity("40").WithUnitPrice("15").Build(t, db)

		// Execute
		position, err := svc.Recompute(context.Background(), portfolio.ID, asset.ID)

		// Assert
		if err != nil {
			t.Fatalf("Recompute() returned unexpected error: %v", err)
		}
		assertPosition(t, position, "60", "10")

		stored, err := svc.GetPosition(portfolio.ID, asset.ID)
		if err != nil {
			t.Fatalf("GetPosition() returned unexpected error: %v", err)
		}
		assertPosition(t, stored, "60", "10")
	})

	t.Run("same-date operations replay in creation order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		// Sell created after the buy on the same date: buy must fold first,
		// otherwise the sell would clamp an empty position.
		testutil.NewOperation(portfolio.ID, asset.ID).
			Sell().WithDate("2024-05-01").WithQuantity("30").WithUnitPrice("12").
			WithCreatedAt(base.Add(time.Minute)).Build(t, db)
		testutil.NewOperation(portfolio.ID, asset.ID).
			Buy().WithDate("2024-05-01").WithQuantity("100").WithUnitPrice("10").
			WithCreatedAt(base).Build(t, db)

		position, err := svc.Recompute(context.Background(), portfolio.ID, asset.ID)

		if err != nil {
			t.Fatalf("Recompute() returned unexpected error: %v", err)
		}
		assertPosition(t, position, "70", "10")
	})

	t.Run("recompute is idempotent against the stored position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		testutil.NewOperation(portfolio.ID, asset.ID).
			Buy().WithDate("2024-01-10").WithQuantity("100").WithUnitPrice("10").Build(t, db)

		first, err := svc.Recompute(context.Background(), portfolio.ID, asset.ID)
		if err != nil {
			t.Fatalf("Recompute() returned unexpected error: %v", err)
		}
		second, err := svc.Recompute(context.Background(), portfolio.ID, asset.ID)
		if err != nil {
			t.Fatalf("Recompute() returned unexpected error: %v", err)
		}

		if !first.Custody.Equal(second.Custody) || !first.AveragePrice.Equal(second.AveragePrice) {
			t.Errorf("Recomputes disagree: %s/%s vs %s/%s",
				first.Custody, first.AveragePrice, second.Custody, second.AveragePrice)
		}
	})
}
