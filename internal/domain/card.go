package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardStatus is the lifecycle state of a fare card.
// Only Active cards may start trips; Blocked cards cannot be topped up.
type CardStatus string

const (
	CardActive   CardStatus = "Active"
	CardInactive CardStatus = "Inactive"
	CardBlocked  CardStatus = "Blocked"
)

// Valid reports whether s is one of the known card statuses.
func (s CardStatus) Valid() bool {
	switch s {
	case CardActive, CardInactive, CardBlocked:
		return true
	}
	return false
}

// CardType is a fare category (Regular, Student, Senior, ...). Its multiplier
// is applied to the matched fare rule amount at settlement time.
type CardType struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	FareMultiplier decimal.Decimal `json:"fare_multiplier"`
	Description    string          `json:"description,omitempty"`
}

// Card is a stored-value fare card. PassengerID and CardTypeID are nil for
// anonymous or untyped cards; an untyped card pays "Regular" fares at
// multiplier 1.0.
type Card struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Balance     decimal.Decimal `json:"balance"`
	IssuedAt    time.Time       `json:"issued_at"`
	Status      CardStatus      `json:"status"`
	PassengerID *uuid.UUID      `json:"passenger_id,omitempty"`
	CardTypeID  *uuid.UUID      `json:"card_type_id,omitempty"`
}
