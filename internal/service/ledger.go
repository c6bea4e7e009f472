package service

import (
	"context"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/repository"
)

type ledgerService struct {
	store repository.Store
}

func NewLedgerService(store repository.Store) LedgerService {
	return &ledgerService{store: store}
}

func (s *ledgerService) GetTransactions(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	return s.store.Ledger().ListByKid(ctx, kidID, page, pageSize)
}

func (s *ledgerService) GetTransaction(ctx context.Context, kidID, txID int32) (*domain.LedgerTransaction, error) {
	return s.store.Ledger().GetByID(ctx, kidID, txID)
}
