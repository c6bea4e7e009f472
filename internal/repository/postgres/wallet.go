package postgres

import (
	"context"
	"database/sql"
	"errors"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/repository"
)

type walletRepository struct {
	db DBTX
}

func NewWalletRepository(db DBTX) repository.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByKid(ctx context.Context, kidID int32) (*domain.Wallet, error) {
	query := `SELECT id, kid_id, main_balance_cents, total_earnings_cents, created_at, updated_at
	          FROM wallets WHERE kid_id = $1`
	var w domain.Wallet
	err := r.db.QueryRowContext(ctx, query, kidID).
		Scan(&w.ID, &w.KidID, &w.MainBalanceCents, &w.TotalEarningsCents, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Credit upserts the wallet row: creates it at zero on first use, then adds
// the amount to both the balance and the lifetime earnings atomically.
func (r *walletRepository) Credit(ctx context.Context, kidID int32, amountCents int64) (*domain.Wallet, error) {
	query := `INSERT INTO wallets (kid_id, main_balance_cents, total_earnings_cents)
	          VALUES ($1, $2, $2)
	          ON CONFLICT (kid_id) DO UPDATE SET
	              main_balance_cents = wallets.main_balance_cents + EXCLUDED.main_balance_cents,
	              total_earnings_cents = wallets.total_earnings_cents + EXCLUDED.total_earnings_cents,
	              updated_at = NOW()
	          RETURNING id, kid_id, main_balance_cents, total_earnings_cents, created_at, updated_at`
	var w domain.Wallet
	err := r.db.QueryRowContext(ctx, query, kidID, amountCents).
		Scan(&w.ID, &w.KidID, &w.MainBalanceCents, &w.TotalEarningsCents, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Debit is guarded in SQL so the balance can never go negative: when the
// balance does not cover the amount the update matches no row and the call
// reports insufficient funds without mutating anything.
func (r *walletRepository) Debit(ctx context.Context, kidID int32, amountCents int64) (*domain.Wallet, error) {
	query := `UPDATE wallets
	          SET main_balance_cents = main_balance_cents - $2, updated_at = NOW()
	          WHERE kid_id = $1 AND main_balance_cents >= $2
	          RETURNING id, kid_id, main_balance_cents, total_earnings_cents, created_at, updated_at`
	var w domain.Wallet
	err := r.db.QueryRowContext(ctx, query, kidID, amountCents).
		Scan(&w.ID, &w.KidID, &w.MainBalanceCents, &w.TotalEarningsCents, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish a missing wallet from one that cannot cover the amount.
		if _, getErr := r.GetByKid(ctx, kidID); errors.Is(getErr, domain.ErrWalletNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, domain.ErrInsufficientFunds
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
