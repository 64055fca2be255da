// Package repo contains all database access logic for the fare-card backend.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping. The one exception
// is ledger.go, which owns the multi-row settlement transaction because its
// correctness depends on row locks that must not leak outside this package.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/metrosync/backend/internal/domain"
)

// db is the minimal query interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting it instead of *pgxpool.Pool directly lets integration
// tests pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scanX
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// mapPgError translates driver-level errors into domain sentinels.
// pgx.ErrNoRows becomes ErrNotFound; unique violations become ErrDuplicate,
// except the open-trip partial index which means a second tap-in on the same
// card and maps to ErrTripAlreadyOpen.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if pgErr.ConstraintName == "uniq_trips_open_card" {
			return domain.ErrTripAlreadyOpen
		}
		return domain.ErrDuplicate
	}
	return err
}
