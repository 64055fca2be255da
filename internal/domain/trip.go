package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trip is a single journey on the network. It is created at tap-in with the
// exit fields unset and mutated exactly once, at tap-out, when settlement
// fills ExitTime, ExitStationID, and Fare. There is no delete path.
type Trip struct {
	ID             uuid.UUID        `json:"id"`
	EntryTime      time.Time        `json:"entry_time"`
	ExitTime       *time.Time       `json:"exit_time,omitempty"` // nil while the trip is open
	Fare           *decimal.Decimal `json:"fare,omitempty"`
	CardID         uuid.UUID        `json:"card_id"`
	EntryStationID uuid.UUID        `json:"entry_station_id"`
	ExitStationID  *uuid.UUID       `json:"exit_station_id,omitempty"`
}

// Open reports whether the trip is still in progress.
// A trip is open iff its exit time is unset.
func (t Trip) Open() bool {
	return t.ExitTime == nil
}

// Settlement is the result of closing a trip: the settled trip, the fare
// that was debited, and the card balance after the debit.
type Settlement struct {
	Trip       Trip            `json:"trip"`
	Fare       decimal.Decimal `json:"fare"`
	NewBalance decimal.Decimal `json:"new_balance"`
}
