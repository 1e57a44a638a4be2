// Package validation holds request validation shared by the HTTP layer.
// Validations return an *Error carrying per-field messages.
package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID reports a malformed resource identifier.
var ErrInvalidUUID = fmt.Errorf("invalid UUID format")

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
