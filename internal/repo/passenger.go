package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/metrosync/backend/internal/domain"
)

// PassengerRepo defines the persistence operations for Passengers.
type PassengerRepo interface {
	// Create inserts a new passenger and returns the persisted record.
	// Returns domain.ErrDuplicate if the email is already registered.
	Create(ctx context.Context, p domain.Passenger) (domain.Passenger, error)

	// GetByID retrieves a single passenger by primary key.
	// Returns domain.ErrNotFound if no passenger with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Passenger, error)

	// ListPaged returns one page of passengers ordered by registration time
	// descending, plus the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Passenger, int64, error)
}

type pgPassengerRepo struct {
	db db
}

// NewPassengerRepo constructs a PassengerRepo backed by the provided db handle.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPassengerRepo(db db) PassengerRepo {
	return &pgPassengerRepo{db: db}
}

func (r *pgPassengerRepo) Create(ctx context.Context, p domain.Passenger) (domain.Passenger, error) {
	const q = `
		INSERT INTO passengers (first_name, last_name, email, phone)
		VALUES (@first_name, @last_name, @email, @phone)
		RETURNING id, first_name, last_name, email, phone, registered_at`

	args := pgx.NamedArgs{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email,
		"phone":      p.Phone,
	}

	result, err := scanPassenger(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("repo.PassengerRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgPassengerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Passenger, error) {
	const q = `
		SELECT id, first_name, last_name, email, phone, registered_at
		FROM passengers
		WHERE id = @id`

	result, err := scanPassenger(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("repo.PassengerRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgPassengerRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Passenger, int64, error) {
	const q = `
		SELECT id, first_name, last_name, email, phone, registered_at,
		       count(*) OVER () AS total
		FROM passengers
		ORDER BY registered_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PassengerRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		passengers []domain.Passenger
		total      int64
	)
	for rows.Next() {
		var (
			pass domain.Passenger
			id   pgtype.UUID
		)
		if err := rows.Scan(&id, &pass.FirstName, &pass.LastName, &pass.Email, &pass.Phone, &pass.RegisteredAt, &total); err != nil {
			return nil, 0, fmt.Errorf("repo.PassengerRepo.ListPaged: scan: %w", err)
		}
		pass.ID = uuid.UUID(id.Bytes)
		passengers = append(passengers, pass)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PassengerRepo.ListPaged: rows: %w", err)
	}

	return passengers, total, nil
}

// scanPassenger maps a single database row into a domain.Passenger.
func scanPassenger(s scanner) (domain.Passenger, error) {
	var (
		p  domain.Passenger
		id pgtype.UUID
	)
	if err := s.Scan(&id, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.RegisteredAt); err != nil {
		return domain.Passenger{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
