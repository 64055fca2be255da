package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/handler"
)

type mockFareRuleServicer struct {
	create func(ctx context.Context, fr domain.FareRule) (domain.FareRule, error)
	list   func(ctx context.Context) ([]domain.FareRule, error)
	update func(ctx context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockFareRuleServicer) Create(ctx context.Context, fr domain.FareRule) (domain.FareRule, error) {
	return m.create(ctx, fr)
}
func (m *mockFareRuleServicer) List(ctx context.Context) ([]domain.FareRule, error) {
	return m.list(ctx)
}
func (m *mockFareRuleServicer) Update(ctx context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error) {
	return m.update(ctx, id, fareType, amount)
}
func (m *mockFareRuleServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.FareRuleServicer = (*mockFareRuleServicer)(nil)

func fareRuleFixture() domain.FareRule {
	return domain.FareRule{
		ID:             uuid.New(),
		StartStationID: uuid.New(),
		EndStationID:   uuid.New(),
		FareType:       "Regular",
		Amount:         decimal.RequireFromString("25.00"),
	}
}

func TestCreateFareRule_201(t *testing.T) {
	fixture := fareRuleFixture()
	svc := &mockFareRuleServicer{
		create: func(_ context.Context, fr domain.FareRule) (domain.FareRule, error) {
			assert.Equal(t, fixture.StartStationID, fr.StartStationID)
			assert.True(t, fr.Amount.Equal(fixture.Amount))
			return fixture, nil
		},
	}
	h := newHandler(serverOpts{fareRules: svc})

	rec := doRequest(h, http.MethodPost, "/fare-rules", jsonBody(t, map[string]any{
		"start_station_id": fixture.StartStationID,
		"end_station_id":   fixture.EndStationID,
		"fare_type":        "Regular",
		"amount":           "25.00",
	}))

	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
}

func TestCreateFareRule_409_DuplicateTriple(t *testing.T) {
	svc := &mockFareRuleServicer{
		create: func(_ context.Context, _ domain.FareRule) (domain.FareRule, error) {
			return domain.FareRule{}, domain.ErrDuplicate
		},
	}
	h := newHandler(serverOpts{fareRules: svc})

	rec := doRequest(h, http.MethodPost, "/fare-rules", jsonBody(t, map[string]any{
		"start_station_id": uuid.New(),
		"end_station_id":   uuid.New(),
		"fare_type":        "Regular",
		"amount":           "25.00",
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateFareRule_200(t *testing.T) {
	fixture := fareRuleFixture()
	svc := &mockFareRuleServicer{
		update: func(_ context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error) {
			assert.Equal(t, fixture.ID, id)
			assert.Equal(t, "Student", fareType)
			updated := fixture
			updated.FareType = fareType
			updated.Amount = amount
			return updated, nil
		},
	}
	h := newHandler(serverOpts{fareRules: svc})

	rec := doRequest(h, http.MethodPut, "/fare-rules/"+fixture.ID.String(), jsonBody(t, map[string]any{
		"fare_type": "Student",
		"amount":    "12.50",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.FareRule
	decodeResponse(t, rec, &got)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("12.50")))
}

func TestDeleteFareRule_204(t *testing.T) {
	svc := &mockFareRuleServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	h := newHandler(serverOpts{fareRules: svc})

	rec := doRequest(h, http.MethodDelete, "/fare-rules/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteFareRule_404(t *testing.T) {
	svc := &mockFareRuleServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	h := newHandler(serverOpts{fareRules: svc})

	rec := doRequest(h, http.MethodDelete, "/fare-rules/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFareRules_200(t *testing.T) {
	svc := &mockFareRuleServicer{
		list: func(_ context.Context) ([]domain.FareRule, error) {
			return []domain.FareRule{fareRuleFixture()}, nil
		},
	}
	h := newHandler(serverOpts{fareRules: svc})

	rec := doRequest(h, http.MethodGet, "/fare-rules", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.FareRule
	decodeResponse(t, rec, &got)
	assert.Len(t, got, 1)
}
