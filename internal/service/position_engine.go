package service

import (
	"github.com/shopspring/decimal"

	"github.com/edersonsgoncalves/acoes-backend/internal/model"
)

// ApplyToPosition returns the position that results from applying one
// operation to the given state. It is the single-step transition used both
// by the full replay and by the incremental fast path, so the two can never
// disagree.
//
// Buy folds the operation total into the weighted average acquisition price.
// Sell only reduces custody; the average price of the remaining shares is
// unchanged. A sell that meets or exceeds the current custody clamps the
// position to zero: custody never goes negative, and closing a position
// discards its cost basis. Every other operation type is recorded in the
// ledger but leaves the position untouched.
func ApplyToPosition(state model.Position, op model.Operation) model.Position {
	switch op.Type {
	case model.OperationBuy:
		priorInvested := state.Custody.Mul(state.AveragePrice)
		newCustody := state.Custody.Add(op.Quantity)

		if newCustody.IsPositive() {
			state.AveragePrice = priorInvested.Add(op.Total).Div(newCustody)
			state.Custody = newCustody
		} else {
			// Zero-quantity buy on an empty position; nothing to average.
			state.Custody = decimal.Zero
			state.AveragePrice = decimal.Zero
		}

	case model.OperationSell:
		newCustody := state.Custody.Sub(op.Quantity)

		if newCustody.IsPositive() {
			state.Custody = newCustody
		} else {
			state.Custody = decimal.Zero
			state.AveragePrice = decimal.Zero
		}

	default:
		// dividend, interest_on_capital, bonus, split, grouping:
		// recognized ledger entries with no custody or price effect.
	}

	return state
}

// ReplayOperations folds a complete (portfolio, asset) operation history
// into its position, starting from a clean zero state. The input must be
// ordered by (date, created_at) ascending, the ordering contract of
// OperationRepository.GetOperationsForPair. The fold is a pure function of
// the sequence: replaying the same history any number of times yields the
// same position, which makes it the authoritative recovery path after any
// edit or delete.
func ReplayOperations(portfolioID, assetID string, ops []model.Operation) model.Position {
	state := model.ZeroPosition(portfolioID, assetID)
	for _, op := range ops {
		state = ApplyToPosition(state, op)
	}
	return state
}
