// Package handlers implements the HTTP layer of the API.
// Handlers parse and validate requests, delegate to the service layer,
// and translate service errors into HTTP status codes.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const maxRequestBody = 1 << 20 // 1 MiB

// parseJSON decodes the request body into T, rejecting unknown fields
// and bodies over maxRequestBody.
func parseJSON[T any](r *http.Request) (T, error) {
	var payload T

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("invalid JSON body: %w", err)
	}

	return payload, nil
}
