package validation

import (
	"strings"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/request"
)

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - ticker: Non-empty, at most 10 characters
//   - name: Non-empty
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		errors["ticker"] = "ticker is required"
	} else if len(ticker) > 10 {
		errors["ticker"] = "ticker must be at most 10 characters"
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAsset validates an asset update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.Ticker != nil {
		ticker := strings.TrimSpace(*req.Ticker)
		if ticker == "" {
			errors["ticker"] = "ticker is required"
		} else if len(ticker) > 10 {
			errors["ticker"] = "ticker must be at most 10 characters"
		}
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
