package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/metrosync/backend/internal/domain"
)

// CardRepo defines the persistence operations for Cards.
// Balance mutations are deliberately absent: they go through LedgerRepo,
// which pairs every balance change with a transaction row under a row lock.
type CardRepo interface {
	// Create inserts a new card and returns the persisted record.
	// Returns domain.ErrDuplicate if the card number is already issued.
	Create(ctx context.Context, c domain.Card) (domain.Card, error)

	// GetByID retrieves a card by primary key.
	// Returns domain.ErrNotFound if no card with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Card, error)

	// GetByNumber retrieves a card by its printed card number.
	GetByNumber(ctx context.Context, number string) (domain.Card, error)

	// ListPaged returns one page of cards ordered by issue time descending,
	// plus the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Card, int64, error)

	// UpdateStatus sets the card status and returns the updated record.
	// Returns domain.ErrNotFound if the card does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CardStatus) (domain.Card, error)
}

type pgCardRepo struct {
	db db
}

// NewCardRepo constructs a CardRepo backed by the provided db handle.
func NewCardRepo(db db) CardRepo {
	return &pgCardRepo{db: db}
}

const cardColumns = `id, number, balance, issued_at, status, passenger_id, card_type_id`

func (r *pgCardRepo) Create(ctx context.Context, c domain.Card) (domain.Card, error) {
	const q = `
		INSERT INTO cards (number, balance, status, passenger_id, card_type_id)
		VALUES (@number, @balance, @status, @passenger_id, @card_type_id)
		RETURNING ` + cardColumns

	args := pgx.NamedArgs{
		"number":       c.Number,
		"balance":      c.Balance,
		"status":       c.Status,
		"passenger_id": c.PassengerID, // nil becomes NULL
		"card_type_id": c.CardTypeID,
	}

	result, err := scanCard(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.CardRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgCardRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Card, error) {
	const q = `SELECT ` + cardColumns + ` FROM cards WHERE id = @id`

	result, err := scanCard(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.CardRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgCardRepo) GetByNumber(ctx context.Context, number string) (domain.Card, error) {
	const q = `SELECT ` + cardColumns + ` FROM cards WHERE number = @number`

	result, err := scanCard(r.db.QueryRow(ctx, q, pgx.NamedArgs{"number": number}))
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.CardRepo.GetByNumber: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgCardRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Card, int64, error) {
	const q = `
		SELECT ` + cardColumns + `, count(*) OVER () AS total
		FROM cards
		ORDER BY issued_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CardRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		cards []domain.Card
		total int64
	)
	for rows.Next() {
		var (
			c           domain.Card
			id          pgtype.UUID
			passengerID pgtype.UUID
			cardTypeID  pgtype.UUID
		)
		err := rows.Scan(&id, &c.Number, &c.Balance, &c.IssuedAt, &c.Status, &passengerID, &cardTypeID, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.CardRepo.ListPaged: scan: %w", err)
		}
		c.ID = uuid.UUID(id.Bytes)
		c.PassengerID = optionalUUID(passengerID)
		c.CardTypeID = optionalUUID(cardTypeID)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.CardRepo.ListPaged: rows: %w", err)
	}

	return cards, total, nil
}

func (r *pgCardRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CardStatus) (domain.Card, error) {
	const q = `
		UPDATE cards
		SET status = @status
		WHERE id = @id
		RETURNING ` + cardColumns

	result, err := scanCard(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": status}))
	if err != nil {
		return domain.Card{}, fmt.Errorf("repo.CardRepo.UpdateStatus: %w", mapPgError(err))
	}
	return result, nil
}

// scanCard maps a single database row into a domain.Card, handling the
// nullable passenger and card type references.
func scanCard(s scanner) (domain.Card, error) {
	var (
		c           domain.Card
		id          pgtype.UUID
		passengerID pgtype.UUID
		cardTypeID  pgtype.UUID
	)
	err := s.Scan(&id, &c.Number, &c.Balance, &c.IssuedAt, &c.Status, &passengerID, &cardTypeID)
	if err != nil {
		return domain.Card{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	c.PassengerID = optionalUUID(passengerID)
	c.CardTypeID = optionalUUID(cardTypeID)
	return c, nil
}

// optionalUUID converts a nullable pgtype.UUID into a *uuid.UUID.
func optionalUUID(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	u := uuid.UUID(v.Bytes)
	return &u
}
