package repo_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
	"github.com/metrosync/backend/testutil"
)

// newTestTx opens a transaction against the test database and rolls it back
// when the test finishes, giving free per-test isolation. Every repo in a
// test is constructed on the same tx so they see each other's writes;
// repo.NewLedgerRepo(tx) works too, because pgx transactions nest as
// savepoints.
//
// Requires TEST_DATABASE_URL to be set; the test skips otherwise.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

var fixtureSeq atomic.Int64

// uniqueSuffix returns a string unique within the test binary, for columns
// with unique constraints (card numbers, emails, station names).
func uniqueSuffix() string {
	return fmt.Sprintf("%d", fixtureSeq.Add(1))
}

func createStation(t *testing.T, tx pgx.Tx, name string) domain.Station {
	t.Helper()
	st, err := repo.NewStationRepo(tx).Create(context.Background(), domain.Station{
		Name: name + "-" + uniqueSuffix(),
		Line: "Blue",
	})
	require.NoError(t, err, "create station fixture")
	return st
}

func createPassenger(t *testing.T, tx pgx.Tx) domain.Passenger {
	t.Helper()
	p, err := repo.NewPassengerRepo(tx).Create(context.Background(), domain.Passenger{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada" + uniqueSuffix() + "@example.com",
	})
	require.NoError(t, err, "create passenger fixture")
	return p
}

func createCard(t *testing.T, tx pgx.Tx, balance string) domain.Card {
	t.Helper()
	c, err := repo.NewCardRepo(tx).Create(context.Background(), domain.Card{
		Number:  "CARD-" + uniqueSuffix(),
		Balance: decimal.RequireFromString(balance),
		Status:  domain.CardActive,
	})
	require.NoError(t, err, "create card fixture")
	return c
}

func createFareRule(t *testing.T, tx pgx.Tx, start, end uuid.UUID, fareType, amount string) domain.FareRule {
	t.Helper()
	fr, err := repo.NewFareRuleRepo(tx).Create(context.Background(), domain.FareRule{
		StartStationID: start,
		EndStationID:   end,
		FareType:       fareType,
		Amount:         decimal.RequireFromString(amount),
	})
	require.NoError(t, err, "create fare rule fixture")
	return fr
}

// seededCardType looks up one of the card types installed by the seed
// migration (Regular, Student, Senior, Monthly).
func seededCardType(t *testing.T, tx pgx.Tx, name string) domain.CardType {
	t.Helper()
	types, err := repo.NewCardTypeRepo(tx).List(context.Background())
	require.NoError(t, err, "list card types")
	for _, ct := range types {
		if ct.Name == name {
			return ct
		}
	}
	t.Fatalf("card type %q not seeded", name)
	return domain.CardType{}
}
