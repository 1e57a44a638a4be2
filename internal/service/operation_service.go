package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/request"
	"github.com/edersonsgoncalves/acoes-backend/internal/model"
	"github.com/edersonsgoncalves/acoes-backend/internal/repository"
)

// OperationService handles ledger mutations. Every create, edit and delete
// runs inside one transaction, under the affected pair's lock, and leaves
// the position cache consistent with the ledger before committing: an
// appended operation that is the newest of its pair takes the incremental
// path, everything else triggers a full replay. A failed position write
// rolls the whole transaction back, so ledger and cache never diverge.
type OperationService struct {
	db              *sql.DB
	operationRepo   *repository.OperationRepository
	assetRepo       *repository.AssetRepository
	portfolioRepo   *repository.PortfolioRepository
	positionService *PositionService

	// now is the clock used for status derivation and creation timestamps.
	now func() time.Time
}

// NewOperationService creates a new OperationService with the provided dependencies.
func NewOperationService(
	db *sql.DB,
	operationRepo *repository.OperationRepository,
	assetRepo *repository.AssetRepository,
	portfolioRepo *repository.PortfolioRepository,
	positionService *PositionService,
) *OperationService {
	return &OperationService{
		db:              db,
		operationRepo:   operationRepo,
		assetRepo:       assetRepo,
		portfolioRepo:   portfolioRepo,
		positionService: positionService,
		now:             time.Now,
	}
}

// GetOperationsPerPortfolio retrieves all operations for a specific
// portfolio, or every operation when portfolioID is empty, in replay order.
func (s *OperationService) GetOperationsPerPortfolio(portfolioID string) ([]model.OperationResponse, error) {
	return s.operationRepo.GetOperationsPerPortfolio(portfolioID)
}

// GetOperation retrieves a single operation by its ID.
func (s *OperationService) GetOperation(operationID string) (model.Operation, error) {
	return s.operationRepo.GetOperation(operationID)
}

// CreateOperation validates references, derives total and status, persists
// the operation and updates the pair's position in the same transaction.
func (s *OperationService) CreateOperation(ctx context.Context, req request.CreateOperationRequest) (*model.Operation, error) {
	operationDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	opType, ok := model.ParseOperationType(req.Type)
	if !ok {
		return nil, fmt.Errorf("unknown operation type: %s", req.Type)
	}

	// Resolve references up front so a bad ID surfaces as not-found rather
	// than as a foreign key failure.
	if _, err := s.assetRepo.GetAsset(req.AssetID); err != nil {
		return nil, err
	}
	if _, err := s.portfolioRepo.GetPortfolio(req.PortfolioID); err != nil {
		return nil, err
	}

	now := s.now()
	operation := &model.Operation{
		ID:          uuid.New().String(),
		Date:        operationDate,
		Type:        opType,
		AssetID:     req.AssetID,
		PortfolioID: req.PortfolioID,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Costs:       req.Costs,
		Total:       model.CalculateTotal(req.Quantity, req.UnitPrice, req.Costs),
		Status:      model.DeriveStatus(operationDate, now),
		CreatedAt:   now,
	}

	unlock := s.positionService.LockPair(operation.PortfolioID, operation.AssetID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// The fast path only holds for an operation that lands at the end of
	// the pair's replay order; a backdated entry forces a full replay.
	isLatest, err := s.positionService.IsLatestForPair(tx, *operation)
	if err != nil {
		return nil, err
	}

	if err := s.operationRepo.WithTx(tx).InsertOperation(ctx, operation); err != nil {
		return nil, fmt.Errorf("failed to create operation: %w", err)
	}

	if isLatest {
		err = s.positionService.ApplyLatest(ctx, tx, *operation)
	} else {
		err = s.positionService.RecomputeInTx(ctx, tx, operation.PortfolioID, operation.AssetID)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return operation, nil
}

// UpdateOperation applies a partial edit to an operation, recomputes its
// derived total and status, and fully replays every affected pair. Edits
// never take the incremental path: the edited operation may sit anywhere in
// its pair's history. When the edit moves the operation to another asset or
// portfolio, both the old and the new pair are replayed.
func (s *OperationService) UpdateOperation(ctx context.Context, operationID string, req request.UpdateOperationRequest) (*model.Operation, error) {
	operation, err := s.operationRepo.GetOperation(operationID)
	if err != nil {
		return nil, err
	}

	oldPortfolioID := operation.PortfolioID
	oldAssetID := operation.AssetID

	if req.Date != nil {
		operationDate, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		operation.Date = operationDate
	}
	if req.Type != nil {
		opType, ok := model.ParseOperationType(*req.Type)
		if !ok {
			return nil, fmt.Errorf("unknown operation type: %s", *req.Type)
		}
		operation.Type = opType
	}
	if req.AssetID != nil {
		if _, err := s.assetRepo.GetAsset(*req.AssetID); err != nil {
			return nil, err
		}
		operation.AssetID = *req.AssetID
	}
	if req.PortfolioID != nil {
		if _, err := s.portfolioRepo.GetPortfolio(*req.PortfolioID); err != nil {
			return nil, err
		}
		operation.PortfolioID = *req.PortfolioID
	}
	if req.Quantity != nil {
		operation.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		operation.UnitPrice = *req.UnitPrice
	}
	if req.Costs != nil {
		operation.Costs = *req.Costs
	}

	operation.Total = model.CalculateTotal(operation.Quantity, operation.UnitPrice, operation.Costs)
	operation.Status = model.DeriveStatus(operation.Date, s.now())

	unlock := s.positionService.LockPairs(oldPortfolioID, oldAssetID, operation.PortfolioID, operation.AssetID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.operationRepo.WithTx(tx).UpdateOperation(ctx, &operation); err != nil {
		return nil, fmt.Errorf("failed to update operation: %w", err)
	}

	if err := s.positionService.RecomputeInTx(ctx, tx, oldPortfolioID, oldAssetID); err != nil {
		return nil, err
	}
	if operation.PortfolioID != oldPortfolioID || operation.AssetID != oldAssetID {
		if err := s.positionService.RecomputeInTx(ctx, tx, operation.PortfolioID, operation.AssetID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &operation, nil
}

// DeleteOperation removes an operation and fully replays its pair in the
// same transaction.
func (s *OperationService) DeleteOperation(ctx context.Context, operationID string) error {
	operation, err := s.operationRepo.GetOperation(operationID)
	if err != nil {
		return err
	}

	unlock := s.positionService.LockPair(operation.PortfolioID, operation.AssetID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.operationRepo.WithTx(tx).DeleteOperation(ctx, operationID); err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}

	if err := s.positionService.RecomputeInTx(ctx, tx, operation.PortfolioID, operation.AssetID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
