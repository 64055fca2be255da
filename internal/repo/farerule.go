package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
)

// FareRuleRepo defines the persistence operations for FareRules.
type FareRuleRepo interface {
	// Create inserts a new fare rule. Returns domain.ErrDuplicate if a rule
	// for the same (start, end, fare type) triple already exists.
	Create(ctx context.Context, fr domain.FareRule) (domain.FareRule, error)

	// GetByID retrieves a fare rule by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.FareRule, error)

	// Find retrieves the rule matching the exact (start, end, fare type)
	// triple. Returns domain.ErrNotFound when no rule matches.
	Find(ctx context.Context, startStationID, endStationID uuid.UUID, fareType string) (domain.FareRule, error)

	// List returns all fare rules ordered by fare type, then start station.
	List(ctx context.Context) ([]domain.FareRule, error)

	// Update overwrites the fare type and amount of an existing rule and
	// returns the updated record. Returns domain.ErrNotFound if it does not
	// exist, domain.ErrDuplicate if the new triple collides with another rule.
	Update(ctx context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error)

	// Delete removes a fare rule by ID. Returns domain.ErrNotFound if it
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgFareRuleRepo struct {
	db db
}

// NewFareRuleRepo constructs a FareRuleRepo backed by the provided db handle.
func NewFareRuleRepo(db db) FareRuleRepo {
	return &pgFareRuleRepo{db: db}
}

const fareRuleColumns = `id, start_station_id, end_station_id, fare_type, amount`

func (r *pgFareRuleRepo) Create(ctx context.Context, fr domain.FareRule) (domain.FareRule, error) {
	const q = `
		INSERT INTO fare_rules (start_station_id, end_station_id, fare_type, amount)
		VALUES (@start_station_id, @end_station_id, @fare_type, @amount)
		RETURNING ` + fareRuleColumns

	args := pgx.NamedArgs{
		"start_station_id": fr.StartStationID,
		"end_station_id":   fr.EndStationID,
		"fare_type":        fr.FareType,
		"amount":           fr.Amount,
	}

	result, err := scanFareRule(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.FareRule{}, fmt.Errorf("repo.FareRuleRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgFareRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FareRule, error) {
	const q = `SELECT ` + fareRuleColumns + ` FROM fare_rules WHERE id = @id`

	result, err := scanFareRule(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.FareRule{}, fmt.Errorf("repo.FareRuleRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgFareRuleRepo) Find(ctx context.Context, startStationID, endStationID uuid.UUID, fareType string) (domain.FareRule, error) {
	const q = `
		SELECT ` + fareRuleColumns + `
		FROM fare_rules
		WHERE start_station_id = @start_station_id
		  AND end_station_id = @end_station_id
		  AND fare_type = @fare_type`

	args := pgx.NamedArgs{
		"start_station_id": startStationID,
		"end_station_id":   endStationID,
		"fare_type":        fareType,
	}

	result, err := scanFareRule(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.FareRule{}, fmt.Errorf("repo.FareRuleRepo.Find: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgFareRuleRepo) List(ctx context.Context) ([]domain.FareRule, error) {
	const q = `SELECT ` + fareRuleColumns + ` FROM fare_rules ORDER BY fare_type, start_station_id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.FareRuleRepo.List: %w", err)
	}
	defer rows.Close()

	var rules []domain.FareRule
	for rows.Next() {
		fr, err := scanFareRule(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.FareRuleRepo.List: scan: %w", err)
		}
		rules = append(rules, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.FareRuleRepo.List: rows: %w", err)
	}

	return rules, nil
}

func (r *pgFareRuleRepo) Update(ctx context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error) {
	const q = `
		UPDATE fare_rules
		SET fare_type = @fare_type,
		    amount    = @amount
		WHERE id = @id
		RETURNING ` + fareRuleColumns

	args := pgx.NamedArgs{"id": id, "fare_type": fareType, "amount": amount}

	result, err := scanFareRule(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.FareRule{}, fmt.Errorf("repo.FareRuleRepo.Update: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgFareRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM fare_rules WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.FareRuleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FareRuleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanFareRule(s scanner) (domain.FareRule, error) {
	var (
		fr    domain.FareRule
		id    pgtype.UUID
		start pgtype.UUID
		end   pgtype.UUID
	)
	if err := s.Scan(&id, &start, &end, &fr.FareType, &fr.Amount); err != nil {
		return domain.FareRule{}, err
	}
	fr.ID = uuid.UUID(id.Bytes)
	fr.StartStationID = uuid.UUID(start.Bytes)
	fr.EndStationID = uuid.UUID(end.Bytes)
	return fr, nil
}
