package service

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/edersonsgoncalves/acoes-backend/internal/brapi"
	"github.com/edersonsgoncalves/acoes-backend/internal/model"
	"github.com/edersonsgoncalves/acoes-backend/internal/repository"
)

// quoteConcurrency bounds the parallel quote requests per dashboard build.
const quoteConcurrency = 4

var oneHundred = decimal.NewFromInt(100)

// DashboardService renders portfolio dashboards: every stored position of a
// portfolio valued against its current market quote. Quotes are fetched
// concurrently, one per held asset; a failed quote degrades that row to
// "unknown" rather than failing the dashboard.
type DashboardService struct {
	portfolioRepo *repository.PortfolioRepository
	positionRepo  *repository.PositionRepository
	quoter        brapi.Quoter
}

// NewDashboardService creates a new DashboardService with the provided dependencies.
func NewDashboardService(
	portfolioRepo *repository.PortfolioRepository,
	positionRepo *repository.PositionRepository,
	quoter brapi.Quoter,
) *DashboardService {
	return &DashboardService{
		portfolioRepo: portfolioRepo,
		positionRepo:  positionRepo,
		quoter:        quoter,
	}
}

// GetDashboard builds the dashboard of one portfolio. Totals only include
// rows whose quote was available; MissingQuoteCount tells the presentation
// layer how many rows were excluded.
func (s *DashboardService) GetDashboard(ctx context.Context, portfolioID string) (model.Dashboard, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(portfolioID)
	if err != nil {
		return model.Dashboard{}, err
	}

	positions, err := s.positionRepo.GetPositionsPerPortfolio(portfolioID)
	if err != nil {
		return model.Dashboard{}, err
	}

	entries := make([]model.DashboardEntry, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteConcurrency)

	for i, position := range positions {
		g.Go(func() error {
			price := s.quoter.CurrentPrice(gctx, position.Ticker)
			entries[i] = buildDashboardEntry(position, price)
			return nil
		})
	}

	// Workers only write their own slot and never return an error; Wait is
	// for completion.
	_ = g.Wait()

	dashboard := model.Dashboard{
		PortfolioID:      portfolio.ID,
		PortfolioName:    portfolio.Name,
		Entries:          entries,
		TotalInvested:    decimal.Zero,
		TotalMarketValue: decimal.Zero,
		TotalGainLoss:    decimal.Zero,
		QuotedInvested:   decimal.Zero,
	}

	for _, entry := range entries {
		dashboard.TotalInvested = dashboard.TotalInvested.Add(entry.InvestedCost)
		if !entry.QuoteAvailable {
			dashboard.MissingQuoteCount++
			continue
		}
		dashboard.QuotedInvested = dashboard.QuotedInvested.Add(entry.InvestedCost)
		dashboard.TotalMarketValue = dashboard.TotalMarketValue.Add(entry.MarketValue)
		dashboard.TotalGainLoss = dashboard.TotalGainLoss.Add(entry.GainLoss)
	}

	return dashboard, nil
}

func buildDashboardEntry(position model.PositionResponse, price decimal.Decimal) model.DashboardEntry {
	entry := model.DashboardEntry{
		AssetID:      position.AssetID,
		Ticker:       position.Ticker,
		AssetName:    position.AssetName,
		Custody:      position.Custody,
		AveragePrice: position.AveragePrice,
		InvestedCost: position.Custody.Mul(position.AveragePrice),
		CurrentPrice: price,
		MarketValue:  decimal.Zero,
		GainLoss:     decimal.Zero,
		GainLossPct:  decimal.Zero,
	}

	// A zero price is the provider's failure sentinel, not a market price.
	if price.IsZero() {
		return entry
	}

	entry.QuoteAvailable = true
	entry.MarketValue = position.Custody.Mul(price)
	entry.GainLoss = entry.MarketValue.Sub(entry.InvestedCost)
	if entry.InvestedCost.IsPositive() {
		entry.GainLossPct = entry.GainLoss.Div(entry.InvestedCost).Mul(oneHundred)
	}

	return entry
}

// WarmQuoteCache pre-fetches quotes for every asset held in any portfolio,
// so scheduled runs keep the gateway cache warm for dashboard reads.
func (s *DashboardService) WarmQuoteCache(ctx context.Context) {
	tickers, err := s.positionRepo.GetHeldTickers()
	if err != nil {
		log.Printf("quote cache warmup skipped: %v", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteConcurrency)

	for _, ticker := range tickers {
		g.Go(func() error {
			s.quoter.CurrentPrice(gctx, ticker)
			return nil
		})
	}

	_ = g.Wait()
	log.Printf("quote cache warmed for %d tickers", len(tickers))
}
