package service

import (
	"context"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/logger"
	"chorebank-backend/internal/repository"
)

type walletService struct {
	store repository.Store
}

func NewWalletService(store repository.Store) WalletService {
	return &walletService{store: store}
}

// creditWallet and debitWallet are the only code paths in the repository
// that touch a wallet balance. Both write the matching ledger entry against
// the same store, so callers running inside ExecTx get balance and ledger
// committed or rolled back together.
func creditWallet(ctx context.Context, s repository.Store, kidID int32, amountCents int64, name domain.TransactionName, description string) (*domain.Wallet, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	wallet, err := s.Wallets().Credit(ctx, kidID, amountCents)
	if err != nil {
		return nil, err
	}
	entry := &domain.LedgerTransaction{
		KidID:       kidID,
		WalletID:    wallet.ID,
		Direction:   domain.DirectionCredit,
		Name:        name,
		AmountCents: amountCents,
		Description: description,
	}
	if err := s.Ledger().Append(ctx, entry); err != nil {
		return nil, err
	}
	return wallet, nil
}

func debitWallet(ctx context.Context, s repository.Store, kidID int32, amountCents int64, name domain.TransactionName, description string) (*domain.Wallet, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	wallet, err := s.Wallets().Debit(ctx, kidID, amountCents)
	if err != nil {
		return nil, err
	}
	entry := &domain.LedgerTransaction{
		KidID:       kidID,
		WalletID:    wallet.ID,
		Direction:   domain.DirectionDebit,
		Name:        name,
		AmountCents: amountCents,
		Description: description,
	}
	if err := s.Ledger().Append(ctx, entry); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) Credit(ctx context.Context, kidID int32, amountCents int64, name domain.TransactionName, description string) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	err := s.store.ExecTx(ctx, func(txs repository.Store) error {
		var err error
		wallet, err = creditWallet(ctx, txs, kidID, amountCents, name, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) Debit(ctx context.Context, kidID int32, amountCents int64, name domain.TransactionName, description string) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	err := s.store.ExecTx(ctx, func(txs repository.Store) error {
		var err error
		wallet, err = debitWallet(ctx, txs, kidID, amountCents, name, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) Fetch(ctx context.Context, kidID int32) (*domain.Wallet, error) {
	return s.store.Wallets().GetByKid(ctx, kidID)
}

// Withdraw empties the wallet. The balance is re-read inside the
// transaction so a concurrent debit cannot leave the ledger out of step.
func (s *walletService) Withdraw(ctx context.Context, kidID int32) (*domain.Wallet, error) {
	logger.EnterMethod("walletService.Withdraw", "kid_id", kidID)

	var wallet *domain.Wallet
	err := s.store.ExecTx(ctx, func(txs repository.Store) error {
		current, err := txs.Wallets().GetByKid(ctx, kidID)
		if err != nil {
			return err
		}
		if current.MainBalanceCents <= 0 {
			return domain.ErrInsufficientFunds
		}
		wallet, err = debitWallet(ctx, txs, kidID, current.MainBalanceCents, domain.TransactionWithdrawal, "Wallet withdrawal")
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("walletService.Withdraw", err, "kid_id", kidID)
		return nil, err
	}

	logger.ExitMethod("walletService.Withdraw", "kid_id", kidID, "balance_cents", wallet.MainBalanceCents)
	return wallet, nil
}
