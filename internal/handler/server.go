// Package handler implements the HTTP handlers for the fare-card API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (trip.go, card.go, etc.) but share the same Server struct so they can
// access its dependencies. Handlers decode JSON, call a servicer, and map
// domain errors to HTTP statuses — no business logic lives here.
package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
)

// The servicer interfaces below define the business operations each handler
// depends on. Defining them here, in the consumer package, follows the Go
// convention "accept interfaces, return concrete types" and lets handler
// tests inject mocks without touching the database or service layer.

// PassengerServicer is implemented by service.PassengerService.
type PassengerServicer interface {
	Register(ctx context.Context, p domain.Passenger) (domain.Passenger, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Passenger, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Passenger, int64, error)
}

// StationServicer is implemented by service.StationService.
type StationServicer interface {
	Create(ctx context.Context, st domain.Station) (domain.Station, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Station, error)
	List(ctx context.Context) ([]domain.Station, error)
}

// CardTypeServicer is implemented by service.CardTypeService.
type CardTypeServicer interface {
	List(ctx context.Context) ([]domain.CardType, error)
}

// CardServicer is implemented by service.CardService.
type CardServicer interface {
	Issue(ctx context.Context, c domain.Card) (domain.Card, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Card, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Card, int64, error)
	TopUp(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error)
	UpdateStatus(ctx context.Context, cardID uuid.UUID, status domain.CardStatus) (domain.Card, error)
}

// FareRuleServicer is implemented by service.FareRuleService.
type FareRuleServicer interface {
	Create(ctx context.Context, fr domain.FareRule) (domain.FareRule, error)
	List(ctx context.Context) ([]domain.FareRule, error)
	Update(ctx context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripServicer is implemented by service.TripService.
type TripServicer interface {
	Open(ctx context.Context, cardID, entryStationID uuid.UUID, entryTime *time.Time) (domain.Trip, error)
	Close(ctx context.Context, tripID, exitStationID uuid.UUID, fareType string, exitTime *time.Time) (domain.Settlement, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// TransactionServicer is implemented by service.TransactionService.
type TransactionServicer interface {
	List(ctx context.Context, cardID *uuid.UUID, p domain.PaginationParams) ([]domain.Transaction, int64, error)
}

// Pinger reports database reachability for the health endpoint.
// Satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies for all API endpoints.
// Wire it into a chi router via Routes.
type Server struct {
	passengers   PassengerServicer
	stations     StationServicer
	cardTypes    CardTypeServicer
	cards        CardServicer
	fareRules    FareRuleServicer
	trips        TripServicer
	transactions TransactionServicer
	db           Pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	passengers PassengerServicer,
	stations StationServicer,
	cardTypes CardTypeServicer,
	cards CardServicer,
	fareRules FareRuleServicer,
	trips TripServicer,
	transactions TransactionServicer,
	db Pinger,
) *Server {
	return &Server{
		passengers:   passengers,
		stations:     stations,
		cardTypes:    cardTypes,
		cards:        cards,
		fareRules:    fareRules,
		trips:        trips,
		transactions: transactions,
		db:           db,
	}
}
