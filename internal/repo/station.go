package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/metrosync/backend/internal/domain"
)

// StationRepo defines the persistence operations for Stations.
// Stations are a small, mostly static set, so List is unpaginated.
type StationRepo interface {
	// Create inserts a new station. Returns domain.ErrDuplicate if the name
	// is already taken.
	Create(ctx context.Context, st domain.Station) (domain.Station, error)

	// GetByID retrieves a station by primary key.
	// Returns domain.ErrNotFound if no station with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Station, error)

	// List returns all stations ordered by name.
	List(ctx context.Context) ([]domain.Station, error)
}

type pgStationRepo struct {
	db db
}

// NewStationRepo constructs a StationRepo backed by the provided db handle.
func NewStationRepo(db db) StationRepo {
	return &pgStationRepo{db: db}
}

func (r *pgStationRepo) Create(ctx context.Context, st domain.Station) (domain.Station, error) {
	const q = `
		INSERT INTO stations (name, line)
		VALUES (@name, @line)
		RETURNING id, name, line`

	result, err := scanStation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": st.Name, "line": st.Line}))
	if err != nil {
		return domain.Station{}, fmt.Errorf("repo.StationRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgStationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Station, error) {
	const q = `SELECT id, name, line FROM stations WHERE id = @id`

	result, err := scanStation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Station{}, fmt.Errorf("repo.StationRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgStationRepo) List(ctx context.Context) ([]domain.Station, error) {
	const q = `SELECT id, name, line FROM stations ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StationRepo.List: %w", err)
	}
	defer rows.Close()

	var stations []domain.Station
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StationRepo.List: scan: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StationRepo.List: rows: %w", err)
	}

	return stations, nil
}

func scanStation(s scanner) (domain.Station, error) {
	var (
		st domain.Station
		id pgtype.UUID
	)
	if err := s.Scan(&id, &st.Name, &st.Line); err != nil {
		return domain.Station{}, err
	}
	st.ID = uuid.UUID(id.Bytes)
	return st, nil
}
