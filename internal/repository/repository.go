package repository

import (
	"context"
	"time"

	"chorebank-backend/internal/domain"
)

type WalletRepository interface {
	GetByKid(ctx context.Context, kidID int32) (*domain.Wallet, error)
	// Credit lazily creates the wallet row and increments both the balance
	// and the lifetime earnings in one statement.
	Credit(ctx context.Context, kidID int32, amountCents int64) (*domain.Wallet, error)
	// Debit decrements the balance only when it covers the amount; returns
	// domain.ErrInsufficientFunds otherwise. Never drives the balance
	// negative regardless of concurrent callers.
	Debit(ctx context.Context, kidID int32, amountCents int64) (*domain.Wallet, error)
}

type LedgerRepository interface {
	Append(ctx context.Context, tx *domain.LedgerTransaction) error
	ListByKid(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
	GetByID(ctx context.Context, kidID, txID int32) (*domain.LedgerTransaction, error)
}

type ChoreRepository interface {
	// SumApprovedEarnings is the read-only quote used before charging.
	SumApprovedEarnings(ctx context.Context, kidID int32) (int64, error)
	// ClaimApprovedForSettlement atomically transitions every APPROVED chore
	// for the kid to COMPLETED and returns the claimed rows. A concurrent
	// settlement sees an empty result instead of the same chores.
	ClaimApprovedForSettlement(ctx context.Context, kidID int32) ([]domain.Chore, error)
}

type SavingGoalRepository interface {
	Create(ctx context.Context, goal *domain.SavingGoal) error
	GetByID(ctx context.Context, goalID int32) (*domain.SavingGoal, error)
	// GetByIDForUpdate locks the goal row for the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, goalID int32) (*domain.SavingGoal, error)
	ListByKid(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.SavingGoal, int32, error)
	Delete(ctx context.Context, kidID, goalID int32) error
	// ApplyContribution conditionally adds to the accumulated total, marking
	// the goal completed when it reaches the target. Returns
	// domain.ErrPaymentExceedsGoal when the guarded update matches no row
	// (completed or would overshoot), so concurrent contributions cannot
	// jointly exceed the target.
	ApplyContribution(ctx context.Context, goalID int32, amountCents int64) (*domain.SavingGoal, error)
	AddPayment(ctx context.Context, payment *domain.GoalPayment) error
	ListPayments(ctx context.Context, goalID int32) ([]domain.GoalPayment, error)
	// ResetAmount zeroes the accumulated total after a withdrawal.
	ResetAmount(ctx context.Context, goalID int32) error
}

type PaymentScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.PaymentSchedule) error
	GetActiveByParent(ctx context.Context, parentID int32) (*domain.PaymentSchedule, error)
	ListActive(ctx context.Context) ([]domain.PaymentSchedule, error)
	// AdvanceDueDate moves next_due_date forward to the given value; the new
	// date is always computed from the prior one, never from the clock.
	AdvanceDueDate(ctx context.Context, scheduleID int32, nextDueDate time.Time) error
	// MarkNotified claims one sweep notification category for the given
	// calendar day. Returns false when another sweep already claimed it,
	// making the sweep idempotent per day.
	MarkNotified(ctx context.Context, scheduleID int32, category domain.DueCategory, day time.Time) (bool, error)
}

type UserRepository interface {
	GetKid(ctx context.Context, kidID int32) (*domain.Kid, error)
	GetParent(ctx context.Context, parentID int32) (*domain.Parent, error)
	ListKidsByParent(ctx context.Context, parentID int32) ([]domain.Kid, error)
	SetParentCanCreate(ctx context.Context, parentID int32, canCreate bool) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, role domain.Role, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

// Store bundles all repositories plus the transaction boundary. ExecTx runs
// fn against a store bound to a single database transaction; every
// balance-mutating sequence in the services goes through it so partial
// failures roll back completely.
type Store interface {
	Wallets() WalletRepository
	Ledger() LedgerRepository
	Chores() ChoreRepository
	SavingGoals() SavingGoalRepository
	Schedules() PaymentScheduleRepository
	Users() UserRepository
	Notifications() NotificationRepository

	ExecTx(ctx context.Context, fn func(Store) error) error
}
