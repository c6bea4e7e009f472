package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"chorebank-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository works
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB // nil when the store is bound to a transaction
	dbx DBTX

	wallets       repository.WalletRepository
	ledger        repository.LedgerRepository
	chores        repository.ChoreRepository
	savingGoals   repository.SavingGoalRepository
	schedules     repository.PaymentScheduleRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	s := newStoreWith(db)
	s.db = db
	return s
}

func newStoreWith(dbx DBTX) *Store {
	return &Store{
		dbx:           dbx,
		wallets:       NewWalletRepository(dbx),
		ledger:        NewLedgerRepository(dbx),
		chores:        NewChoreRepository(dbx),
		savingGoals:   NewSavingGoalRepository(dbx),
		schedules:     NewPaymentScheduleRepository(dbx),
		users:         NewUserRepository(dbx),
		notifications: NewNotificationRepository(dbx),
	}
}

func (s *Store) Wallets() repository.WalletRepository              { return s.wallets }
func (s *Store) Ledger() repository.LedgerRepository               { return s.ledger }
func (s *Store) Chores() repository.ChoreRepository                { return s.chores }
func (s *Store) SavingGoals() repository.SavingGoalRepository      { return s.savingGoals }
func (s *Store) Schedules() repository.PaymentScheduleRepository   { return s.schedules }
func (s *Store) Users() repository.UserRepository                  { return s.users }
func (s *Store) Notifications() repository.NotificationRepository  { return s.notifications }

// ExecTx runs fn against a transaction-bound store and commits, rolling
// back on error or panic. Calls nested inside an open transaction reuse it.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("tx begin failed: %w", err)
	}

	txStore := newStoreWith(tx)
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit failed: %w", err)
	}
	return nil
}
