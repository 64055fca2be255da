// Package domain contains the core data types for the fare-card backend.
// This package has zero dependencies on other internal packages and is
// imported by every other one (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Passenger is a registered rider. A passenger may hold zero or more cards;
// the link lives on the card side.
type Passenger struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"` // normalized: lowercased and trimmed
	Phone        string    `json:"phone,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}
