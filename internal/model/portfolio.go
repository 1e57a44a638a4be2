package model

import "time"

// Portfolio represents a named collection of operations and positions.
// Portfolio names are unique.
type Portfolio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
