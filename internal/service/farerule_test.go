package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/service"
)

func validRule() domain.FareRule {
	return domain.FareRule{
		StartStationID: entryID,
		EndStationID:   exitID,
		FareType:       "Regular",
		Amount:         decimal.RequireFromString("25.00"),
	}
}

func echoRuleRepo() *mockFareRuleRepo {
	return &mockFareRuleRepo{
		create: func(_ context.Context, fr domain.FareRule) (domain.FareRule, error) { return fr, nil },
	}
}

// ---- Resolve tests --------------------------------------------------------------

func TestFareRuleService_Resolve_ExactMatch(t *testing.T) {
	rules := &mockFareRuleRepo{
		find: func(_ context.Context, start, end uuid.UUID, fareType string) (domain.FareRule, error) {
			if start == entryID && end == exitID && fareType == "Regular" {
				return validRule(), nil
			}
			return domain.FareRule{}, domain.ErrNotFound
		},
	}
	svc := service.NewFareRuleService(rules, knownStations(entryID, exitID))

	got, err := svc.Resolve(context.Background(), entryID, exitID, "Regular")

	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("25.00")))
}

func TestFareRuleService_Resolve_NoLooserFallback(t *testing.T) {
	// A rule exists for Regular but is requested as Student: the mismatch is
	// ErrFareNotFound, never the Regular amount.
	rules := &mockFareRuleRepo{
		find: func(_ context.Context, _, _ uuid.UUID, fareType string) (domain.FareRule, error) {
			if fareType == "Regular" {
				return validRule(), nil
			}
			return domain.FareRule{}, domain.ErrNotFound
		},
	}
	svc := service.NewFareRuleService(rules, knownStations(entryID, exitID))

	_, err := svc.Resolve(context.Background(), entryID, exitID, "Student")

	assert.ErrorIs(t, err, domain.ErrFareNotFound)
}

func TestFareRuleService_Resolve_EmptyFareType(t *testing.T) {
	svc := service.NewFareRuleService(nil, nil)

	_, err := svc.Resolve(context.Background(), entryID, exitID, "")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFareRuleService_Resolve_UnknownStation(t *testing.T) {
	svc := service.NewFareRuleService(nil, knownStations(entryID))

	_, err := svc.Resolve(context.Background(), entryID, uuid.New(), "Regular")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrFareNotFound)
}

// ---- Create tests ---------------------------------------------------------------

func TestFareRuleService_Create_Valid(t *testing.T) {
	svc := service.NewFareRuleService(echoRuleRepo(), knownStations(entryID, exitID))

	got, err := svc.Create(context.Background(), validRule())

	require.NoError(t, err)
	assert.Equal(t, "Regular", got.FareType)
}

func TestFareRuleService_Create_MissingFareType(t *testing.T) {
	svc := service.NewFareRuleService(echoRuleRepo(), knownStations(entryID, exitID))

	fr := validRule()
	fr.FareType = "  "

	_, err := svc.Create(context.Background(), fr)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFareRuleService_Create_NegativeAmount(t *testing.T) {
	svc := service.NewFareRuleService(echoRuleRepo(), knownStations(entryID, exitID))

	fr := validRule()
	fr.Amount = decimal.RequireFromString("-1.00")

	_, err := svc.Create(context.Background(), fr)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFareRuleService_Create_UnknownStation(t *testing.T) {
	svc := service.NewFareRuleService(echoRuleRepo(), knownStations(entryID))

	_, err := svc.Create(context.Background(), validRule())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFareRuleService_Create_DuplicateTriple(t *testing.T) {
	rules := &mockFareRuleRepo{
		create: func(_ context.Context, _ domain.FareRule) (domain.FareRule, error) {
			return domain.FareRule{}, domain.ErrDuplicate
		},
	}
	svc := service.NewFareRuleService(rules, knownStations(entryID, exitID))

	_, err := svc.Create(context.Background(), validRule())

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ---- Update / Delete tests --------------------------------------------------------

func TestFareRuleService_Update_Valid(t *testing.T) {
	rules := &mockFareRuleRepo{
		update: func(_ context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error) {
			return domain.FareRule{ID: id, FareType: fareType, Amount: amount}, nil
		},
	}
	svc := service.NewFareRuleService(rules, nil)

	got, err := svc.Update(context.Background(), tripID, "Student", decimal.RequireFromString("12.50"))

	require.NoError(t, err)
	assert.Equal(t, "Student", got.FareType)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("12.50")))
}

func TestFareRuleService_Update_NegativeAmount(t *testing.T) {
	svc := service.NewFareRuleService(nil, nil)

	_, err := svc.Update(context.Background(), tripID, "Student", decimal.RequireFromString("-0.01"))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFareRuleService_Delete_NotFound(t *testing.T) {
	rules := &mockFareRuleRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewFareRuleService(rules, nil)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFareRuleService_List_NilBecomesEmptySlice(t *testing.T) {
	rules := &mockFareRuleRepo{
		list: func(_ context.Context) ([]domain.FareRule, error) { return nil, nil },
	}
	svc := service.NewFareRuleService(rules, nil)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
