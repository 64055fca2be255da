package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
	"github.com/metrosync/backend/internal/service"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; unset methods panic,
// which makes an unexpected call an immediate, loud failure.

type mockCardRepo struct {
	create       func(ctx context.Context, c domain.Card) (domain.Card, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Card, error)
	getByNumber  func(ctx context.Context, number string) (domain.Card, error)
	listPaged    func(ctx context.Context, p domain.PaginationParams) ([]domain.Card, int64, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status domain.CardStatus) (domain.Card, error)
}

func (m *mockCardRepo) Create(ctx context.Context, c domain.Card) (domain.Card, error) {
	return m.create(ctx, c)
}
func (m *mockCardRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Card, error) {
	return m.getByID(ctx, id)
}
func (m *mockCardRepo) GetByNumber(ctx context.Context, number string) (domain.Card, error) {
	return m.getByNumber(ctx, number)
}
func (m *mockCardRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Card, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockCardRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CardStatus) (domain.Card, error) {
	return m.updateStatus(ctx, id, status)
}

var _ repo.CardRepo = (*mockCardRepo)(nil)

type mockStationRepo struct {
	create  func(ctx context.Context, st domain.Station) (domain.Station, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Station, error)
	list    func(ctx context.Context) ([]domain.Station, error)
}

func (m *mockStationRepo) Create(ctx context.Context, st domain.Station) (domain.Station, error) {
	return m.create(ctx, st)
}
func (m *mockStationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Station, error) {
	return m.getByID(ctx, id)
}
func (m *mockStationRepo) List(ctx context.Context) ([]domain.Station, error) {
	return m.list(ctx)
}

var _ repo.StationRepo = (*mockStationRepo)(nil)

// knownStations returns a StationRepo stub that recognizes the given IDs and
// returns domain.ErrNotFound for everything else.
func knownStations(ids ...uuid.UUID) *mockStationRepo {
	return &mockStationRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Station, error) {
			for _, known := range ids {
				if id == known {
					return domain.Station{ID: id, Name: "station"}, nil
				}
			}
			return domain.Station{}, domain.ErrNotFound
		},
	}
}

type mockCardTypeRepo struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.CardType, error)
	list    func(ctx context.Context) ([]domain.CardType, error)
}

func (m *mockCardTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CardType, error) {
	return m.getByID(ctx, id)
}
func (m *mockCardTypeRepo) List(ctx context.Context) ([]domain.CardType, error) {
	return m.list(ctx)
}

var _ repo.CardTypeRepo = (*mockCardTypeRepo)(nil)

type mockPassengerRepo struct {
	create    func(ctx context.Context, p domain.Passenger) (domain.Passenger, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Passenger, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Passenger, int64, error)
}

func (m *mockPassengerRepo) Create(ctx context.Context, p domain.Passenger) (domain.Passenger, error) {
	return m.create(ctx, p)
}
func (m *mockPassengerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Passenger, error) {
	return m.getByID(ctx, id)
}
func (m *mockPassengerRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Passenger, int64, error) {
	return m.listPaged(ctx, p)
}

var _ repo.PassengerRepo = (*mockPassengerRepo)(nil)

type mockTripRepo struct {
	createOpen    func(ctx context.Context, cardID, entryStationID uuid.UUID, entryTime time.Time) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getOpenByCard func(ctx context.Context, cardID uuid.UUID) (domain.Trip, error)
	listPaged     func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

func (m *mockTripRepo) CreateOpen(ctx context.Context, cardID, entryStationID uuid.UUID, entryTime time.Time) (domain.Trip, error) {
	return m.createOpen(ctx, cardID, entryStationID, entryTime)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetOpenByCard(ctx context.Context, cardID uuid.UUID) (domain.Trip, error) {
	return m.getOpenByCard(ctx, cardID)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockLedgerRepo struct {
	settle func(ctx context.Context, tripID, exitStationID uuid.UUID, exitTime time.Time, fare decimal.Decimal) (domain.Settlement, error)
	credit func(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error)
	debit  func(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error)
}

func (m *mockLedgerRepo) Settle(ctx context.Context, tripID, exitStationID uuid.UUID, exitTime time.Time, fare decimal.Decimal) (domain.Settlement, error) {
	return m.settle(ctx, tripID, exitStationID, exitTime, fare)
}
func (m *mockLedgerRepo) Credit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error) {
	return m.credit(ctx, cardID, amount)
}
func (m *mockLedgerRepo) Debit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error) {
	return m.debit(ctx, cardID, amount)
}

var _ repo.LedgerRepo = (*mockLedgerRepo)(nil)

type mockFareRuleRepo struct {
	create  func(ctx context.Context, fr domain.FareRule) (domain.FareRule, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.FareRule, error)
	find    func(ctx context.Context, startStationID, endStationID uuid.UUID, fareType string) (domain.FareRule, error)
	list    func(ctx context.Context) ([]domain.FareRule, error)
	update  func(ctx context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockFareRuleRepo) Create(ctx context.Context, fr domain.FareRule) (domain.FareRule, error) {
	return m.create(ctx, fr)
}
func (m *mockFareRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FareRule, error) {
	return m.getByID(ctx, id)
}
func (m *mockFareRuleRepo) Find(ctx context.Context, startStationID, endStationID uuid.UUID, fareType string) (domain.FareRule, error) {
	return m.find(ctx, startStationID, endStationID, fareType)
}
func (m *mockFareRuleRepo) List(ctx context.Context) ([]domain.FareRule, error) {
	return m.list(ctx)
}
func (m *mockFareRuleRepo) Update(ctx context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error) {
	return m.update(ctx, id, fareType, amount)
}
func (m *mockFareRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.FareRuleRepo = (*mockFareRuleRepo)(nil)

type mockFareResolver struct {
	resolve func(ctx context.Context, startStationID, endStationID uuid.UUID, fareType string) (domain.FareRule, error)
}

func (m *mockFareResolver) Resolve(ctx context.Context, startStationID, endStationID uuid.UUID, fareType string) (domain.FareRule, error) {
	return m.resolve(ctx, startStationID, endStationID, fareType)
}

var _ service.FareResolver = (*mockFareResolver)(nil)
