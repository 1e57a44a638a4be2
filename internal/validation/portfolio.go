package validation

import (
	"strings"

	"github.com/edersonsgoncalves/acoes-backend/internal/api/request"
)

// ValidateCreatePortfolio validates a portfolio creation request.
// The name is required and limited to 60 characters.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errors["name"] = "name is required"
	} else if len(name) > 60 {
		errors["name"] = "name must be at most 60 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
