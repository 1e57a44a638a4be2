package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/edersonsgoncalves/acoes-backend/internal/apperrors"
	"github.com/edersonsgoncalves/acoes-backend/internal/model"
	"github.com/edersonsgoncalves/acoes-backend/internal/repository"
)

// PositionService owns the derived position cache: it is the only component
// that writes the position table, and it serializes every read-modify-write
// per (portfolio, asset) pair.
//
// Two write paths exist. ApplyLatest is the fast path for appending one
// operation that is the newest in (date, created_at) order; it advances the
// stored position by a single engine step. RecomputeInTx is the full replay,
// mandatory after any edit or delete and after inserts that land before the
// pair's newest operation. Both paths run under the pair's lock, so they can
// never interleave on one key; distinct pairs proceed independently.
type PositionService struct {
	db            *sql.DB
	operationRepo *repository.OperationRepository
	positionRepo  *repository.PositionRepository

	locks sync.Map // pair key -> *sync.Mutex
}

// NewPositionService creates a new PositionService with the provided repository dependencies.
func NewPositionService(
	db *sql.DB,
	operationRepo *repository.OperationRepository,
	positionRepo *repository.PositionRepository,
) *PositionService {
	return &PositionService{
		db:            db,
		operationRepo: operationRepo,
		positionRepo:  positionRepo,
	}
}

func pairKey(portfolioID, assetID string) string {
	return portfolioID + "/" + assetID
}

// LockPair acquires the serialization lock for one (portfolio, asset) pair
// and returns the unlock function. Every mutation of a pair's operations
// must hold this lock across its whole transaction.
func (s *PositionService) LockPair(portfolioID, assetID string) func() {
	mu, _ := s.locks.LoadOrStore(pairKey(portfolioID, assetID), &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// LockPairs acquires the locks of two pairs in deterministic key order so
// concurrent callers cannot deadlock. Used when an edit moves an operation
// between pairs. Identical pairs are locked once.
func (s *PositionService) LockPairs(portfolioA, assetA, portfolioB, assetB string) func() {
	keyA := pairKey(portfolioA, assetA)
	keyB := pairKey(portfolioB, assetB)

	if keyA == keyB {
		return s.LockPair(portfolioA, assetA)
	}
	if keyA > keyB {
		portfolioA, assetA, portfolioB, assetB = portfolioB, assetB, portfolioA, assetA
	}

	unlockA := s.LockPair(portfolioA, assetA)
	unlockB := s.LockPair(portfolioB, assetB)
	return func() {
		unlockB()
		unlockA()
	}
}

// GetPosition returns the stored position for a pair; absent pairs read as
// the zero position.
func (s *PositionService) GetPosition(portfolioID, assetID string) (model.Position, error) {
	return s.positionRepo.GetPosition(portfolioID, assetID)
}

// GetPositionsPerPortfolio returns every stored position of a portfolio
// enriched with asset data.
func (s *PositionService) GetPositionsPerPortfolio(portfolioID string) ([]model.PositionResponse, error) {
	return s.positionRepo.GetPositionsPerPortfolio(portfolioID)
}

// ApplyLatest advances the stored position of op's pair by one engine step,
// inside the caller's transaction. Precondition: the caller holds the pair
// lock and op is already persisted as the newest operation of the pair in
// (date, created_at) order. Out-of-order mutations must use RecomputeInTx.
func (s *PositionService) ApplyLatest(ctx context.Context, tx *sql.Tx, op model.Operation) error {
	current, err := s.positionRepo.WithTx(tx).GetPosition(op.PortfolioID, op.AssetID)
	if err != nil {
		return err
	}

	next := ApplyToPosition(current, op)

	if err := s.positionRepo.WithTx(tx).UpsertPosition(ctx, next); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPositionUpdateFailed, err)
	}

	return nil
}

// RecomputeInTx rebuilds the position of one pair from its full operation
// history, inside the caller's transaction. The caller holds the pair lock.
func (s *PositionService) RecomputeInTx(ctx context.Context, tx *sql.Tx, portfolioID, assetID string) error {
	ops, err := s.operationRepo.WithTx(tx).GetOperationsForPair(portfolioID, assetID)
	if err != nil {
		return err
	}

	position := ReplayOperations(portfolioID, assetID, ops)

	if err := s.positionRepo.WithTx(tx).UpsertPosition(ctx, position); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPositionUpdateFailed, err)
	}

	return nil
}

// Recompute rebuilds the position of one pair in its own transaction, under
// the pair lock. This is the externally triggerable recovery path: it
// restores the invariant that the stored position equals the fold of the
// ledger, whatever state the cache was in.
func (s *PositionService) Recompute(ctx context.Context, portfolioID, assetID string) (model.Position, error) {
	unlock := s.LockPair(portfolioID, assetID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.RecomputeInTx(ctx, tx, portfolioID, assetID); err != nil {
		return model.Position{}, err
	}

	position, err := s.positionRepo.WithTx(tx).GetPosition(portfolioID, assetID)
	if err != nil {
		return model.Position{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Position{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return position, nil
}

// IsLatestForPair reports whether an operation being appended now sorts at
// or after every other operation of its pair, i.e. whether the fast path
// precondition holds. Ties on the date are resolved by created_at, and an
// operation created now always wins a same-day tie against existing rows.
func (s *PositionService) IsLatestForPair(tx *sql.Tx, op model.Operation) (bool, error) {
	newest, err := s.operationRepo.WithTx(tx).GetNewestOperationDate(op.PortfolioID, op.AssetID, op.ID)
	if err != nil {
		return false, err
	}
	if newest.IsZero() {
		return true, nil
	}
	return !newest.After(op.Date), nil
}
