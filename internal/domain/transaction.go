package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types recorded by the ledger.
const (
	TxTypeFare  = "Fare"   // debit recorded at trip settlement
	TxTypeTopUp = "Top-up" // credit recorded when a card is loaded
)

// Transaction is an immutable ledger entry for a card balance change.
// Amount is always positive; Type says which direction it moved.
type Transaction struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
	CardID     *uuid.UUID      `json:"card_id,omitempty"`
}
