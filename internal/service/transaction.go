package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/metrosync/backend/internal/domain"
	"github.com/metrosync/backend/internal/repo"
)

// TransactionService exposes read access to the card transaction ledger.
type TransactionService struct {
	repo repo.TransactionRepo
}

// NewTransactionService constructs a TransactionService backed by the provided repo.
func NewTransactionService(r repo.TransactionRepo) *TransactionService {
	return &TransactionService{repo: r}
}

// List returns one page of transactions and the total count, newest first.
// A non-nil cardID filters the result to that card.
func (s *TransactionService) List(ctx context.Context, cardID *uuid.UUID, p domain.PaginationParams) ([]domain.Transaction, int64, error) {
	txs, total, err := s.repo.ListPaged(ctx, cardID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TransactionService.List: %w", err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, total, nil
}
