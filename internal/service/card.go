package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
)

// CardService implements business logic for Card operations, including the
// balance guard: credits and debits flow through the ledger repo, which
// pairs every balance change with a transaction row atomically.
type CardService struct {
	cards      repo.CardRepo
	passengers repo.PassengerRepo
	cardTypes  repo.CardTypeRepo
	ledger     repo.LedgerRepo
}

// NewCardService constructs a CardService backed by the provided repos.
func NewCardService(cards repo.CardRepo, passengers repo.PassengerRepo, cardTypes repo.CardTypeRepo, ledger repo.LedgerRepo) *CardService {
	return &CardService{cards: cards, passengers: passengers, cardTypes: cardTypes, ledger: ledger}
}

// Issue validates and persists a new card. The status defaults to Active and
// the opening balance must not be negative. Referenced passenger and card
// type records must exist.
func (s *CardService) Issue(ctx context.Context, c domain.Card) (domain.Card, error) {
	c.Number = strings.TrimSpace(c.Number)
	if c.Number == "" {
		return domain.Card{}, fmt.Errorf("%w: number is required", domain.ErrValidation)
	}
	if c.Balance.IsNegative() {
		return domain.Card{}, fmt.Errorf("%w: balance must not be negative", domain.ErrValidation)
	}
	if c.Status == "" {
		c.Status = domain.CardActive
	}
	if !c.Status.Valid() {
		return domain.Card{}, fmt.Errorf("%w: status must be Active, Inactive, or Blocked", domain.ErrValidation)
	}
	if c.PassengerID != nil {
		if _, err := s.passengers.GetByID(ctx, *c.PassengerID); err != nil {
			return domain.Card{}, fmt.Errorf("service.CardService.Issue: passenger: %w", err)
		}
	}
	if c.CardTypeID != nil {
		if _, err := s.cardTypes.GetByID(ctx, *c.CardTypeID); err != nil {
			return domain.Card{}, fmt.Errorf("service.CardService.Issue: card type: %w", err)
		}
	}

	result, err := s.cards.Create(ctx, c)
	if err != nil {
		return domain.Card{}, fmt.Errorf("service.CardService.Issue: %w", err)
	}
	return result, nil
}

// GetByID returns a single card by ID.
func (s *CardService) GetByID(ctx context.Context, id uuid.UUID) (domain.Card, error) {
	result, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return domain.Card{}, fmt.Errorf("service.CardService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of cards and the total count.
func (s *CardService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Card, int64, error) {
	cards, total, err := s.cards.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CardService.List: %w", err)
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	return cards, total, nil
}

// TopUp credits the card balance by amount and records a "Top-up"
// transaction. The amount must not be negative; Blocked cards cannot be
// topped up (the ledger enforces that under the row lock).
func (s *CardService) TopUp(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error) {
	if amount.IsNegative() {
		return domain.Card{}, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	result, err := s.ledger.Credit(ctx, cardID, amount)
	if err != nil {
		return domain.Card{}, fmt.Errorf("service.CardService.TopUp: %w", err)
	}
	return result, nil
}

// Debit subtracts amount from the card balance and records a "Fare"
// transaction. Rejects debits that would take the balance below zero.
func (s *CardService) Debit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) (domain.Card, error) {
	if amount.IsNegative() {
		return domain.Card{}, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	result, err := s.ledger.Debit(ctx, cardID, amount)
	if err != nil {
		return domain.Card{}, fmt.Errorf("service.CardService.Debit: %w", err)
	}
	return result, nil
}

// UpdateStatus sets the card status (Active, Inactive, Blocked).
func (s *CardService) UpdateStatus(ctx context.Context, cardID uuid.UUID, status domain.CardStatus) (domain.Card, error) {
	if !status.Valid() {
		return domain.Card{}, fmt.Errorf("%w: status must be Active, Inactive, or Blocked", domain.ErrValidation)
	}
	result, err := s.cards.UpdateStatus(ctx, cardID, status)
	if err != nil {
		return domain.Card{}, fmt.Errorf("service.CardService.UpdateStatus: %w", err)
	}
	return result, nil
}
