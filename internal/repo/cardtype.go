package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/metrosync/backend/internal/domain"
)

// CardTypeRepo defines the persistence operations for CardTypes.
// The set is seeded by migration and read-only at runtime.
type CardTypeRepo interface {
	// GetByID retrieves a card type by primary key.
	// Returns domain.ErrNotFound if no card type with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.CardType, error)

	// List returns all card types ordered by name.
	List(ctx context.Context) ([]domain.CardType, error)
}

type pgCardTypeRepo struct {
	db db
}

// NewCardTypeRepo constructs a CardTypeRepo backed by the provided db handle.
func NewCardTypeRepo(db db) CardTypeRepo {
	return &pgCardTypeRepo{db: db}
}

func (r *pgCardTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CardType, error) {
	const q = `
		SELECT id, name, fare_multiplier, description
		FROM card_types
		WHERE id = @id`

	result, err := scanCardType(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.CardType{}, fmt.Errorf("repo.CardTypeRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgCardTypeRepo) List(ctx context.Context) ([]domain.CardType, error) {
	const q = `
		SELECT id, name, fare_multiplier, description
		FROM card_types
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CardTypeRepo.List: %w", err)
	}
	defer rows.Close()

	var types []domain.CardType
	for rows.Next() {
		ct, err := scanCardType(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CardTypeRepo.List: scan: %w", err)
		}
		types = append(types, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CardTypeRepo.List: rows: %w", err)
	}

	return types, nil
}

func scanCardType(s scanner) (domain.CardType, error) {
	var (
		ct domain.CardType
		id pgtype.UUID
	)
	if err := s.Scan(&id, &ct.Name, &ct.FareMultiplier, &ct.Description); err != nil {
		return domain.CardType{}, err
	}
	ct.ID = uuid.UUID(id.Bytes)
	return ct, nil
}
