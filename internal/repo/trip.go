package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// Closing a trip is not here: settlement touches three tables under a row
// lock and lives in LedgerRepo.
type TripRepo interface {
	// CreateOpen inserts a new open trip (exit fields null) and returns the
	// persisted record. Returns domain.ErrTripAlreadyOpen if the card
	// already has an open trip.
	CreateOpen(ctx context.Context, cardID, entryStationID uuid.UUID, entryTime time.Time) (domain.Trip, error)

	// GetByID retrieves a trip by primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetOpenByCard retrieves the open trip for a card, if any.
	// Returns domain.ErrNotFound when the card has no open trip.
	GetOpenByCard(ctx context.Context, cardID uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips ordered by entry time descending,
	// plus the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db handle.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, entry_time, exit_time, fare, card_id, entry_station_id, exit_station_id`

func (r *pgTripRepo) CreateOpen(ctx context.Context, cardID, entryStationID uuid.UUID, entryTime time.Time) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (entry_time, card_id, entry_station_id)
		VALUES (@entry_time, @card_id, @entry_station_id)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"entry_time":       entryTime,
		"card_id":          cardID,
		"entry_station_id": entryStationID,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.CreateOpen: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetOpenByCard(ctx context.Context, cardID uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE card_id = @card_id AND exit_time IS NULL`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"card_id": cardID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetOpenByCard: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, count(*) OVER () AS total
		FROM trips
		ORDER BY entry_time DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.Trip
		total int64
	)
	for rows.Next() {
		var (
			t           domain.Trip
			id          pgtype.UUID
			cardID      pgtype.UUID
			entry       pgtype.UUID
			exit        pgtype.UUID
			exitTime    pgtype.Timestamptz
			fare        decimal.NullDecimal
		)
		err := rows.Scan(&id, &t.EntryTime, &exitTime, &fare, &cardID, &entry, &exit, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, assembleTrip(t, id, cardID, entry, exit, exitTime, fare))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	return trips, total, nil
}

// scanTrip maps a single database row into a domain.Trip, handling the
// nullable exit fields.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t        domain.Trip
		id       pgtype.UUID
		cardID   pgtype.UUID
		entry    pgtype.UUID
		exit     pgtype.UUID
		exitTime pgtype.Timestamptz
		fare     decimal.NullDecimal
	)
	err := s.Scan(&id, &t.EntryTime, &exitTime, &fare, &cardID, &entry, &exit)
	if err != nil {
		return domain.Trip{}, err
	}
	return assembleTrip(t, id, cardID, entry, exit, exitTime, fare), nil
}

func assembleTrip(t domain.Trip, id, cardID, entry, exit pgtype.UUID, exitTime pgtype.Timestamptz, fare decimal.NullDecimal) domain.Trip {
	t.ID = uuid.UUID(id.Bytes)
	t.CardID = uuid.UUID(cardID.Bytes)
	t.EntryStationID = uuid.UUID(entry.Bytes)
	t.ExitStationID = optionalUUID(exit)
	if exitTime.Valid {
		et := exitTime.Time
		t.ExitTime = &et
	}
	if fare.Valid {
		f := fare.Decimal
		t.Fare = &f
	}
	return t
}
