package postgres

import (
	"context"
	"database/sql"
	"errors"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/repository"
)

type ledgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Append inserts one immutable ledger row. There is deliberately no update
// or delete on this table anywhere in the repository.
func (r *ledgerRepository) Append(ctx context.Context, tx *domain.LedgerTransaction) error {
	if tx.AmountCents <= 0 {
		return domain.ErrInvalidAmount
	}
	query := `INSERT INTO ledger_transactions (kid_id, wallet_id, direction, transaction_name, amount_cents, description)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		tx.KidID, tx.WalletID, tx.Direction, tx.Name, tx.AmountCents, tx.Description).
		Scan(&tx.ID, &tx.CreatedAt)
}

func (r *ledgerRepository) ListByKid(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, kid_id, wallet_id, direction, transaction_name, amount_cents, COALESCE(description, ''), created_at
	          FROM ledger_transactions WHERE kid_id = $1
	          ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, kidID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.LedgerTransaction
	for rows.Next() {
		var tx domain.LedgerTransaction
		if err := rows.Scan(&tx.ID, &tx.KidID, &tx.WalletID, &tx.Direction, &tx.Name, &tx.AmountCents, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, 0, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM ledger_transactions WHERE kid_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, kidID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}

func (r *ledgerRepository) GetByID(ctx context.Context, kidID, txID int32) (*domain.LedgerTransaction, error) {
	query := `SELECT id, kid_id, wallet_id, direction, transaction_name, amount_cents, COALESCE(description, ''), created_at
	          FROM ledger_transactions WHERE id = $1 AND kid_id = $2`
	var tx domain.LedgerTransaction
	err := r.db.QueryRowContext(ctx, query, txID, kidID).
		Scan(&tx.ID, &tx.KidID, &tx.WalletID, &tx.Direction, &tx.Name, &tx.AmountCents, &tx.Description, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLedgerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
