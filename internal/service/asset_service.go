package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/request"
	"github.com/edersonsgoncalves/acoes-backend/internal/model"
	"github.com/edersonsgoncalves/acoes-backend/internal/repository"
	"github.com/edersonsgoncalves/acoes-backend/internal/tickersearch"
)

// AssetService handles asset-catalog business logic operations.
type AssetService struct {
	assetRepo *repository.AssetRepository
	searcher  tickersearch.Searcher
}

// NewAssetService creates a new AssetService with the provided dependencies.
// searcher may be nil when no search provider is configured.
func NewAssetService(assetRepo *repository.AssetRepository, searcher tickersearch.Searcher) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		searcher:  searcher,
	}
}

// GetAssets returns one page of the catalog, ordered by name.
func (s *AssetService) GetAssets(page, perPage int) (model.AssetPage, error) {
	return s.assetRepo.GetAssets(page, perPage)
}

// GetAsset retrieves a single asset by its ID.
func (s *AssetService) GetAsset(assetID string) (model.Asset, error) {
	return s.assetRepo.GetAsset(assetID)
}

// CreateAsset registers a new asset. Tickers are stored upper-cased.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (*model.Asset, error) {
	asset := &model.Asset{
		ID:      uuid.New().String(),
		Ticker:  strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Name:    strings.TrimSpace(req.Name),
		Segment: strings.TrimSpace(req.Segment),
		Type:    strings.TrimSpace(req.Type),
	}

	if err := s.assetRepo.InsertAsset(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// UpdateAsset applies a corrective edit to an asset.
func (s *AssetService) UpdateAsset(ctx context.Context, assetID string, req request.UpdateAssetRequest) (*model.Asset, error) {
	asset, err := s.assetRepo.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	if req.Ticker != nil {
		asset.Ticker = strings.ToUpper(strings.TrimSpace(*req.Ticker))
	}
	if req.Name != nil {
		asset.Name = strings.TrimSpace(*req.Name)
	}
	if req.Segment != nil {
		asset.Segment = strings.TrimSpace(*req.Segment)
	}
	if req.Type != nil {
		asset.Type = strings.TrimSpace(*req.Type)
	}

	if err := s.assetRepo.UpdateAsset(ctx, &asset); err != nil {
		return nil, err
	}

	return &asset, nil
}

// DeleteAsset removes an asset that has no recorded operations.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string) error {
	return s.assetRepo.DeleteAsset(ctx, assetID)
}

// GetOperationTypes returns the seeded operation-type catalog.
func (s *AssetService) GetOperationTypes() ([]model.OperationTypeInfo, error) {
	return s.assetRepo.GetOperationTypes()
}

// LookupTicker queries the search provider for catalog data. Provider
// failures degrade to a not-found result; the lookup endpoint never errors
// because of the provider.
func (s *AssetService) LookupTicker(ctx context.Context, ticker string) model.TickerInfo {
	normalized := tickersearch.NormalizeTicker(ticker)
	if s.searcher == nil {
		return model.TickerInfo{Ticker: normalized, Found: false}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	info, err := s.searcher.Lookup(lookupCtx, ticker)
	if err != nil {
		log.Printf("ticker lookup failed for %s: %v", normalized, err)
		return model.TickerInfo{Ticker: normalized, Found: false}
	}

	return info
}
