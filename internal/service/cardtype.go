package service

import (
	"context"
	"fmt"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
)

// CardTypeService exposes the seeded fare categories.
type CardTypeService struct {
	repo repo.CardTypeRepo
}

// NewCardTypeService constructs a CardTypeService backed by the provided repo.
func NewCardTypeService(r repo.CardTypeRepo) *CardTypeService {
	return &CardTypeService{repo: r}
}

// List returns all card types ordered by name.
func (s *CardTypeService) List(ctx context.Context) ([]domain.CardType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CardTypeService.List: %w", err)
	}
	if types == nil {
		return []domain.CardType{}, nil
	}
	return types, nil
}
