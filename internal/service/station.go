package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
)

// StationService implements business logic for Station operations.
type StationService struct {
	repo repo.StationRepo
}

// NewStationService constructs a StationService backed by the provided repo.
func NewStationService(r repo.StationRepo) *StationService {
	return &StationService{repo: r}
}

// Create validates and persists a new station.
func (s *StationService) Create(ctx context.Context, st domain.Station) (domain.Station, error) {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return domain.Station{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.repo.Create(ctx, st)
	if err != nil {
		return domain.Station{}, fmt.Errorf("service.StationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single station by ID.
func (s *StationService) GetByID(ctx context.Context, id uuid.UUID) (domain.Station, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Station{}, fmt.Errorf("service.StationService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all stations ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StationService) List(ctx context.Context) ([]domain.Station, error) {
	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StationService.List: %w", err)
	}
	if stations == nil {
		return []domain.Station{}, nil
	}
	return stations, nil
}
