package service

import (
	"context"
	"time"

	"chorebank-backend/internal/domain"
)

// WalletService is the single choke point for balance mutation: every
// credit or debit writes a matching ledger entry in the same transaction.
type WalletService interface {
	Credit(ctx context.Context, kidID int32, amountCents int64, name domain.TransactionName, description string) (*domain.Wallet, error)
	Debit(ctx context.Context, kidID int32, amountCents int64, name domain.TransactionName, description string) (*domain.Wallet, error)
	Fetch(ctx context.Context, kidID int32) (*domain.Wallet, error)
	// Withdraw debits the entire current balance.
	Withdraw(ctx context.Context, kidID int32) (*domain.Wallet, error)
}

type LedgerService interface {
	GetTransactions(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
	GetTransaction(ctx context.Context, kidID, txID int32) (*domain.LedgerTransaction, error)
}

// ContributionResult is returned from a savings contribution.
type ContributionResult struct {
	Goal            *domain.SavingGoal `json:"goal"`
	Wallet          *domain.Wallet     `json:"wallet"`
	ProgressPercent float64            `json:"progress_percent"`
}

// GoalWithdrawalResult reports a completed-goal withdrawal back to the wallet.
type GoalWithdrawalResult struct {
	AmountWithdrawnCents int64          `json:"amount_withdrawn_cents"`
	Wallet               *domain.Wallet `json:"wallet"`
}

type SavingsService interface {
	CreateGoal(ctx context.Context, kidID int32, title string, startDate time.Time, totalCents int64, schedule string, amountPerPeriodCents int64) (*domain.SavingGoal, error)
	Contribute(ctx context.Context, kidID, goalID int32, amountCents int64, isScheduled bool) (*ContributionResult, error)
	Withdraw(ctx context.Context, kidID, goalID int32) (*GoalWithdrawalResult, error)
	Delete(ctx context.Context, kidID, goalID int32) error
	GetGoal(ctx context.Context, kidID, goalID int32) (*domain.SavingGoal, error)
	ListGoals(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.SavingGoal, int32, error)
}

type PaymentService interface {
	// InitiatePayment charges the parent for the kid's approved chores and,
	// only on processor confirmation, settles them into the wallet.
	InitiatePayment(ctx context.Context, parentID, kidID int32) (*domain.PaymentConfirmation, error)
	// SettleApprovedChores credits the wallet for every approved chore of
	// the kid and marks them completed, atomically.
	SettleApprovedChores(ctx context.Context, kidID int32) (*domain.SettlementResult, error)
}

// SweepSummary reports one due-date sweep run.
type SweepSummary struct {
	SchedulesChecked int `json:"schedules_checked"`
	RemindersSent    int `json:"reminders_sent"`
	DueNoticesSent   int `json:"due_notices_sent"`
	OverdueSent      int `json:"overdue_sent"`
}

type ScheduleService interface {
	CreateSchedule(ctx context.Context, parentID int32, scheduleType string, startDate time.Time) (*domain.PaymentSchedule, error)
	// RunDueDateSweep classifies every active schedule against the given day
	// and emits at most one notification per category per day.
	RunDueDateSweep(ctx context.Context, today time.Time) (*SweepSummary, error)
}

// NotificationService persists in-app records and dispatches push messages.
// Notify is fire-and-forget: delivery failures are logged, never returned.
type NotificationService interface {
	Notify(ctx context.Context, userID int32, role domain.Role, deviceToken, title, message string, attrs map[string]string)
	GetNotifications(ctx context.Context, userID int32, role domain.Role, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendPaymentDueReminder(ctx context.Context, email, name string, amountCents int64, dueDate time.Time) error
	SendPaymentOverdueNotice(ctx context.Context, email, name string, amountCents int64) error
}
