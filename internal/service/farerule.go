package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
)

// FareRuleService implements fare rule administration and fare resolution.
type FareRuleService struct {
	rules    repo.FareRuleRepo
	stations repo.StationRepo
}

// NewFareRuleService constructs a FareRuleService backed by the provided repos.
func NewFareRuleService(rules repo.FareRuleRepo, stations repo.StationRepo) *FareRuleService {
	return &FareRuleService{rules: rules, stations: stations}
}

// Resolve returns the fare rule for the exact (start, end, fare type) triple.
// Both stations must exist. There is no looser fallback: a missing rule is
// domain.ErrFareNotFound, never a guessed amount. Pure read — Resolve never
// mutates state, so the same inputs always yield the same rule for an
// unchanged rule set.
func (s *FareRuleService) Resolve(ctx context.Context, startStationID, endStationID uuid.UUID, fareType string) (domain.FareRule, error) {
	if fareType == "" {
		return domain.FareRule{}, fmt.Errorf("%w: fare_type is required", domain.ErrValidation)
	}
	if _, err := s.stations.GetByID(ctx, startStationID); err != nil {
		return domain.FareRule{}, fmt.Errorf("service.FareRuleService.Resolve: start station: %w", err)
	}
	if _, err := s.stations.GetByID(ctx, endStationID); err != nil {
		return domain.FareRule{}, fmt.Errorf("service.FareRuleService.Resolve: end station: %w", err)
	}

	rule, err := s.rules.Find(ctx, startStationID, endStationID, fareType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.FareRule{}, fmt.Errorf("service.FareRuleService.Resolve: %w", domain.ErrFareNotFound)
		}
		return domain.FareRule{}, fmt.Errorf("service.FareRuleService.Resolve: %w", err)
	}
	return rule, nil
}

// Create validates and persists a new fare rule.
func (s *FareRuleService) Create(ctx context.Context, fr domain.FareRule) (domain.FareRule, error) {
	if err := validateFareRule(fr.FareType, fr.Amount); err != nil {
		return domain.FareRule{}, err
	}
	if _, err := s.stations.GetByID(ctx, fr.StartStationID); err != nil {
		return domain.FareRule{}, fmt.Errorf("service.FareRuleService.Create: start station: %w", err)
	}
	if _, err := s.stations.GetByID(ctx, fr.EndStationID); err != nil {
		return domain.FareRule{}, fmt.Errorf("service.FareRuleService.Create: end station: %w", err)
	}

	result, err := s.rules.Create(ctx, fr)
	if err != nil {
		return domain.FareRule{}, fmt.Errorf("service.FareRuleService.Create: %w", err)
	}
	return result, nil
}

// List returns all fare rules.
func (s *FareRuleService) List(ctx context.Context) ([]domain.FareRule, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.FareRuleService.List: %w", err)
	}
	if rules == nil {
		return []domain.FareRule{}, nil
	}
	return rules, nil
}

// Update overwrites the fare type and amount of an existing rule.
func (s *FareRuleService) Update(ctx context.Context, id uuid.UUID, fareType string, amount decimal.Decimal) (domain.FareRule, error) {
	if err := validateFareRule(fareType, amount); err != nil {
		return domain.FareRule{}, err
	}
	result, err := s.rules.Update(ctx, id, fareType, amount)
	if err != nil {
		return domain.FareRule{}, fmt.Errorf("service.FareRuleService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a fare rule by ID.
func (s *FareRuleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rules.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FareRuleService.Delete: %w", err)
	}
	return nil
}

// validateFareRule enforces the rules common to Create and Update:
// fare type non-empty, amount non-negative.
func validateFareRule(fareType string, amount decimal.Decimal) error {
	if strings.TrimSpace(fareType) == "" {
		return fmt.Errorf("%w: fare_type is required", domain.ErrValidation)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	return nil
}
