package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/metrosync/backend/internal/domain"
)

// TransactionRepo defines read access to the transaction ledger.
// Inserts happen only inside LedgerRepo's settlement and top-up
// transactions; there is no standalone write path.
type TransactionRepo interface {
	// ListPaged returns one page of transactions ordered by occurrence time
	// descending, plus the total count. When cardID is non-nil the result is
	// filtered to that card.
	ListPaged(ctx context.Context, cardID *uuid.UUID, p domain.PaginationParams) ([]domain.Transaction, int64, error)
}

type pgTransactionRepo struct {
	db db
}

// NewTransactionRepo constructs a TransactionRepo backed by the provided db handle.
func NewTransactionRepo(db db) TransactionRepo {
	return &pgTransactionRepo{db: db}
}

func (r *pgTransactionRepo) ListPaged(ctx context.Context, cardID *uuid.UUID, p domain.PaginationParams) ([]domain.Transaction, int64, error) {
	const q = `
		SELECT id, type, amount, occurred_at, card_id, count(*) OVER () AS total
		FROM transactions
		WHERE @card_id::uuid IS NULL OR card_id = @card_id
		ORDER BY occurred_at DESC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"card_id": cardID, // nil matches all cards
		"limit":   p.Limit,
		"offset":  p.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TransactionRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		txs   []domain.Transaction
		total int64
	)
	for rows.Next() {
		var (
			tx   domain.Transaction
			id   pgtype.UUID
			card pgtype.UUID
		)
		if err := rows.Scan(&id, &tx.Type, &tx.Amount, &tx.OccurredAt, &card, &total); err != nil {
			return nil, 0, fmt.Errorf("repo.TransactionRepo.ListPaged: scan: %w", err)
		}
		tx.ID = uuid.UUID(id.Bytes)
		tx.CardID = optionalUUID(card)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TransactionRepo.ListPaged: rows: %w", err)
	}

	return txs, total, nil
}
