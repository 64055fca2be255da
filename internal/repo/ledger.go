package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
)

// txBeginner is satisfied by *pgxpool.Pool and pgx.Conn. The ledger needs to
// open its own transactions, so it cannot run on the plain db interface the
// other repos use.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// LedgerRepo owns every card balance mutation. Each method runs a single
// database transaction that locks the affected rows, adjusts the balance,
// and records a transaction row — either all of it persists or none of it.
type LedgerRepo interface {
	// Settle closes an open trip: fills its exit fields, debits the card by
	// fare, and records a "Fare" transaction. The trip and card rows are
	// locked for the duration, so concurrent settlements of the same trip
	// serialize; the loser sees the trip closed and gets
	// domain.ErrTripAlreadyClosed with no second debit.
	//
	// Returns domain.ErrNotFound if the trip or card is missing,
	// domain.ErrInsufficientBalance if the debit would go negative.
	Settle(ctx context.Context, tripID, exitStationID uuid.UUID, exitTime time.Time, fare decimal.Decimal) (domain.Settlement, error)

	// Credit adds amount to the card balance and records a "Top-up"
	// transaction. Returns domain.ErrCardNotEligible if the card is Blocked.
	Credit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error)

	// Debit subtracts amount from the card balance and records a "Fare"
	// transaction. Returns domain.ErrInsufficientBalance if the balance
	// would go negative.
	Debit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error)
}

type pgLedgerRepo struct {
	pool txBeginner
}

// NewLedgerRepo constructs a LedgerRepo on a connection source that can open
// transactions (in production, *pgxpool.Pool).
func NewLedgerRepo(pool txBeginner) LedgerRepo {
	return &pgLedgerRepo{pool: pool}
}

func (r *pgLedgerRepo) Settle(ctx context.Context, tripID, exitStationID uuid.UUID, exitTime time.Time, fare decimal.Decimal) (domain.Settlement, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("repo.LedgerRepo.Settle: begin: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback(ctx)

	// Lock the trip row first. This is the serialization point for
	// concurrent settlements of the same trip.
	const lockTrip = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id FOR UPDATE`
	trip, err := scanTrip(tx.QueryRow(ctx, lockTrip, pgx.NamedArgs{"id": tripID}))
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("repo.LedgerRepo.Settle: lock trip: %w", mapPgError(err))
	}
	if !trip.Open() {
		return domain.Settlement{}, fmt.Errorf("repo.LedgerRepo.Settle: %w", domain.ErrTripAlreadyClosed)
	}

	newBalance, err := debitLocked(ctx, tx, trip.CardID, fare)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("repo.LedgerRepo.Settle: %w", err)
	}

	const closeTrip = `
		UPDATE trips
		SET exit_time       = @exit_time,
		    exit_station_id = @exit_station_id,
		    fare            = @fare
		WHERE id = @id
		RETURNING ` + tripColumns
	args := pgx.NamedArgs{
		"id":              tripID,
		"exit_time":       exitTime,
		"exit_station_id": exitStationID,
		"fare":            fare,
	}
	closed, err := scanTrip(tx.QueryRow(ctx, closeTrip, args))
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("repo.LedgerRepo.Settle: close trip: %w", mapPgError(err))
	}

	if err := insertTransaction(ctx, tx, trip.CardID, domain.TxTypeFare, fare, exitTime); err != nil {
		return domain.Settlement{}, fmt.Errorf("repo.LedgerRepo.Settle: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Settlement{}, fmt.Errorf("repo.LedgerRepo.Settle: commit: %w", err)
	}

	return domain.Settlement{Trip: closed, Fare: fare, NewBalance: newBalance}, nil
}

func (r *pgLedgerRepo) Credit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Credit: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	card, err := lockCard(ctx, tx, cardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Credit: %w", err)
	}
	if card.Status == domain.CardBlocked {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Credit: %w: card is Blocked", domain.ErrCardNotEligible)
	}

	const q = `UPDATE cards SET balance = balance + @amount WHERE id = @id RETURNING ` + cardColumns
	updated, err := scanCard(tx.QueryRow(ctx, q, pgx.NamedArgs{"id": cardID, "amount": amount}))
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Credit: update balance: %w", mapPgError(err))
	}

	if err := insertTransaction(ctx, tx, cardID, domain.TxTypeTopUp, amount, time.Now().UTC()); err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Credit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Credit: commit: %w", err)
	}
	return updated, nil
}

func (r *pgLedgerRepo) Debit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Debit: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := debitLocked(ctx, tx, cardID, amount); err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Debit: %w", err)
	}

	if err := insertTransaction(ctx, tx, cardID, domain.TxTypeFare, amount, time.Now().UTC()); err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Debit: %w", err)
	}

	card, err := scanCard(tx.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = @id`, pgx.NamedArgs{"id": cardID}))
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Debit: reload card: %w", mapPgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Card{}, fmt.Errorf("repo.LedgerRepo.Debit: commit: %w", err)
	}
	return card, nil
}

// lockCard loads a card row under FOR UPDATE within tx.
func lockCard(ctx context.Context, tx pgx.Tx, cardID uuid.UUID) (domain.Card, error) {
	const q = `SELECT ` + cardColumns + ` FROM cards WHERE id = @id FOR UPDATE`
	card, err := scanCard(tx.QueryRow(ctx, q, pgx.NamedArgs{"id": cardID}))
	if err != nil {
		if errors.Is(mapPgError(err), domain.ErrNotFound) {
			return domain.Card{}, fmt.Errorf("lock card: %w", domain.ErrNotFound)
		}
		return domain.Card{}, fmt.Errorf("lock card: %w", err)
	}
	return card, nil
}

// debitLocked locks the card row, verifies the balance covers amount, and
// applies the debit. Returns the new balance.
func debitLocked(ctx context.Context, tx pgx.Tx, cardID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	card, err := lockCard(ctx, tx, cardID)
	if err != nil {
		return decimal.Zero, err
	}
	if card.Balance.LessThan(amount) {
		return decimal.Zero, fmt.Errorf("%w: balance %s, fare %s", domain.ErrInsufficientBalance, card.Balance, amount)
	}

	const q = `UPDATE cards SET balance = balance - @amount WHERE id = @id RETURNING balance`
	var newBalance decimal.Decimal
	if err := tx.QueryRow(ctx, q, pgx.NamedArgs{"id": cardID, "amount": amount}).Scan(&newBalance); err != nil {
		return decimal.Zero, fmt.Errorf("debit card: %w", mapPgError(err))
	}
	return newBalance, nil
}

// insertTransaction records a ledger row inside tx.
func insertTransaction(ctx context.Context, tx pgx.Tx, cardID uuid.UUID, txType string, amount decimal.Decimal, at time.Time) error {
	const q = `
		INSERT INTO transactions (type, amount, occurred_at, card_id)
		VALUES (@type, @amount, @occurred_at, @card_id)`
	args := pgx.NamedArgs{
		"type":        txType,
		"amount":      amount,
		"occurred_at": at,
		"card_id":     cardID,
	}
	if _, err := tx.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
