package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
)

// FareResolver resolves the fare rule for a station pair and fare type.
// Satisfied by *FareRuleService; an interface so TripService tests can
// stub fare resolution without a rule table.
type FareResolver interface {
	Resolve(ctx context.Context, startStationID, endStationID uuid.UUID, fareType string) (domain.FareRule, error)
}

// TripService implements the trip lifecycle: Open at tap-in, Close at
// tap-out. A trip is open while its exit fields are unset and becomes closed
// exactly once, when settlement fills them, debits the card, and records the
// fare transaction as one atomic unit.
type TripService struct {
	trips     repo.TripRepo
	cards     repo.CardRepo
	stations  repo.StationRepo
	cardTypes repo.CardTypeRepo
	fares     FareResolver
	ledger    repo.LedgerRepo
}

// NewTripService constructs a TripService backed by the provided repos and
// fare resolver.
func NewTripService(trips repo.TripRepo, cards repo.CardRepo, stations repo.StationRepo, cardTypes repo.CardTypeRepo, fares FareResolver, ledger repo.LedgerRepo) *TripService {
	return &TripService{
		trips:     trips,
		cards:     cards,
		stations:  stations,
		cardTypes: cardTypes,
		fares:     fares,
		ledger:    ledger,
	}
}

// Open starts a trip for a card at an entry station (tap-in).
// The card must exist and be Active; the station must exist; the card must
// not already have an open trip. entryTime nil means "now".
//
// Returns domain.ErrCardNotEligible for Inactive or Blocked cards,
// domain.ErrTripAlreadyOpen when an unfinished trip exists for the card.
func (s *TripService) Open(ctx context.Context, cardID, entryStationID uuid.UUID, entryTime *time.Time) (domain.Trip, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Open: card: %w", err)
	}
	if card.Status != domain.CardActive {
		return domain.Trip{}, fmt.Errorf("service.TripService.Open: %w: card status is %s", domain.ErrCardNotEligible, card.Status)
	}
	if _, err := s.stations.GetByID(ctx, entryStationID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Open: entry station: %w", err)
	}

	at := time.Now().UTC()
	if entryTime != nil {
		at = *entryTime
	}

	// The partial unique index on open trips backs this up against races.
	trip, err := s.trips.CreateOpen(ctx, cardID, entryStationID, at)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Open: %w", err)
	}
	return trip, nil
}

// Close settles an open trip at an exit station (tap-out).
//
// The fare type defaults to the card type's name ("Regular" for untyped
// cards); fareType overrides it when non-empty. The fare is the matched
// rule's amount times the card type's multiplier, rounded to 2 decimals.
// Settlement — trip close, card debit, transaction insert — is one atomic
// database transaction; on any failure nothing persists.
//
// Returns domain.ErrTripAlreadyClosed if the trip was already settled (the
// card is never debited twice), domain.ErrFareNotFound when no rule matches,
// domain.ErrInsufficientBalance when the card cannot cover the fare.
func (s *TripService) Close(ctx context.Context, tripID, exitStationID uuid.UUID, fareType string, exitTime *time.Time) (domain.Settlement, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("service.TripService.Close: trip: %w", err)
	}
	if !trip.Open() {
		return domain.Settlement{}, fmt.Errorf("service.TripService.Close: %w", domain.ErrTripAlreadyClosed)
	}
	if _, err := s.stations.GetByID(ctx, exitStationID); err != nil {
		return domain.Settlement{}, fmt.Errorf("service.TripService.Close: exit station: %w", err)
	}

	card, err := s.cards.GetByID(ctx, trip.CardID)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("service.TripService.Close: card: %w", err)
	}

	multiplier := decimal.NewFromInt(1)
	typeName := domain.DefaultFareType
	if card.CardTypeID != nil {
		ct, err := s.cardTypes.GetByID(ctx, *card.CardTypeID)
		if err != nil {
			return domain.Settlement{}, fmt.Errorf("service.TripService.Close: card type: %w", err)
		}
		multiplier = ct.FareMultiplier
		typeName = ct.Name
	}
	if fareType == "" {
		fareType = typeName
	}

	rule, err := s.fares.Resolve(ctx, trip.EntryStationID, exitStationID, fareType)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("service.TripService.Close: %w", err)
	}

	// Rules store the base fare; the card type's multiplier is applied here,
	// at settlement, and nowhere else.
	fare := rule.Amount.Mul(multiplier).Round(2)

	at := time.Now().UTC()
	if exitTime != nil {
		at = *exitTime
	}

	settlement, err := s.ledger.Settle(ctx, tripID, exitStationID, at, fare)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("service.TripService.Close: %w", err)
	}
	return settlement, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns one page of trips and the total count.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}
