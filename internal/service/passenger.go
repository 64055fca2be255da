// Package service contains the business logic for the fare-card backend.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
)

// PassengerService implements business logic for Passenger operations.
type PassengerService struct {
	repo repo.PassengerRepo
}

// NewPassengerService constructs a PassengerService backed by the provided repo.
func NewPassengerService(r repo.PassengerRepo) *PassengerService {
	return &PassengerService{repo: r}
}

// Register validates and persists a new passenger. The email is normalized
// (trimmed, lowercased) before storage so lookups and the unique constraint
// are case-insensitive in effect.
func (s *PassengerService) Register(ctx context.Context, p domain.Passenger) (domain.Passenger, error) {
	p.Email = NormalizeEmail(p.Email)
	if err := validatePassenger(p); err != nil {
		return domain.Passenger{}, err
	}
	result, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("service.PassengerService.Register: %w", err)
	}
	return result, nil
}

// GetByID returns a single passenger by ID.
func (s *PassengerService) GetByID(ctx context.Context, id uuid.UUID) (domain.Passenger, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("service.PassengerService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of passengers and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PassengerService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Passenger, int64, error) {
	passengers, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PassengerService.List: %w", err)
	}
	if passengers == nil {
		passengers = []domain.Passenger{}
	}
	return passengers, total, nil
}

// NormalizeEmail trims surrounding whitespace and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassenger enforces the registration rules:
//   - first and last name must be non-empty (whitespace-only rejected)
//   - email must be non-empty and contain exactly one "@" with a non-empty
//     local part and domain
func validatePassenger(p domain.Passenger) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("%w: first_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("%w: last_name is required", domain.ErrValidation)
	}
	if p.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	local, dom, found := strings.Cut(p.Email, "@")
	if !found || local == "" || dom == "" || strings.Contains(dom, "@") {
		return fmt.Errorf("%w: email is malformed", domain.ErrValidation)
	}
	return nil
}
