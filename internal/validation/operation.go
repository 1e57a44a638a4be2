package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/request"
	"github.com/edersonsgoncalves/acoes-backend/internal/model"
)

// ValidateCreateOperation validates an operation creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - assetId, portfolioId: Must be valid UUIDs
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of the recognized operation types
//   - quantity, unitPrice: Must be non-negative
//   - costs: Must be non-negative (zero when omitted)
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateOperation(req request.CreateOperationRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.AssetID); err != nil {
		return err
	}
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if _, ok := model.ParseOperationType(req.Type); !ok {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Quantity.IsNegative() {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.UnitPrice.IsNegative() {
		errors["unitPrice"] = "unitPrice cannot be negative"
	}
	if req.Costs.IsNegative() {
		errors["costs"] = "costs cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateOperation validates an operation update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateOperation(req request.UpdateOperationRequest) error {
	errors := make(map[string]string)

	if req.AssetID != nil {
		if err := ValidateUUID(*req.AssetID); err != nil {
			return err
		}
	}
	if req.PortfolioID != nil {
		if err := ValidateUUID(*req.PortfolioID); err != nil {
			return err
		}
	}

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if _, ok := model.ParseOperationType(*req.Type); !ok {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}

	if req.Quantity != nil && req.Quantity.IsNegative() {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		errors["unitPrice"] = "unitPrice cannot be negative"
	}
	if req.Costs != nil && req.Costs.IsNegative() {
		errors["costs"] = "costs cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
