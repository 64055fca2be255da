package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultFareType is used when resolving a fare for a card with no card type.
const DefaultFareType = "Regular"

// FareRule maps a (start station, end station, fare type) triple to a base
// fare amount. The triple is unique. Amount is the fare before the card
// type's multiplier is applied.
type FareRule struct {
	ID             uuid.UUID       `json:"id"`
	StartStationID uuid.UUID       `json:"start_station_id"`
	EndStationID   uuid.UUID       `json:"end_station_id"`
	FareType       string          `json:"fare_type"`
	Amount         decimal.Decimal `json:"amount"`
}
