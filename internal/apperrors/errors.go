// Package apperrors defines the sentinel errors shared across services,
// repositories and handlers.
package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrOperationNotFound indicates that an operation with the given ID does not exist.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrSettingNotFound indicates that a setting with the given key does not exist.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrDuplicateEntry indicates that an entity with the same unique
	// constraint already exists (asset ticker, portfolio name).
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrAssetInUse indicates that an asset cannot be deleted because
	// operations still reference it.
	ErrAssetInUse = errors.New("asset has recorded operations")

	// ErrPortfolioInUse indicates that a portfolio cannot be deleted because
	// operations still reference it.
	ErrPortfolioInUse = errors.New("portfolio has recorded operations")

	// ErrInvalidOperationType indicates a type outside the recognized catalog.
	ErrInvalidOperationType = errors.New("invalid operation type")

	// ErrNegativeAmount indicates that a quantity, price or cost field has an
	// invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Consistency errors represent failures that would leave the position cache
// out of sync with the operation ledger. They are always surfaced, never
// swallowed: a silently lost position update breaks the invariant that the
// stored position equals the fold of the operation history.
var (
	// ErrPositionUpdateFailed indicates that persisting a recomputed position
	// failed and the enclosing transaction was rolled back.
	ErrPositionUpdateFailed = errors.New("failed to persist recomputed position")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	ErrFailedToRetrieveAssets     = errors.New("failed to retrieve assets")
	ErrFailedToRetrievePortfolios = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveOperations = errors.New("failed to retrieve operations")
	ErrFailedToRetrievePositions  = errors.New("failed to retrieve positions")
	ErrFailedToBuildDashboard     = errors.New("failed to build dashboard")
	ErrFailedToLookupTicker       = errors.New("failed to look up ticker")
)
