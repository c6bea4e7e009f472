package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the wallet/settlement core. Handlers map these to
// stable error kinds and HTTP status codes; services test them with
// errors.Is so wrapped variants keep their identity.
var (
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrGoalNotFound     = errors.New("saving goal not found")
	ErrScheduleNotFound = errors.New("payment schedule not found")
	ErrKidNotFound      = errors.New("kid not found")
	ErrLedgerNotFound   = errors.New("ledger transaction not found")

	ErrNotAuthorized = errors.New("not authorized for this resource")

	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidSchedule    = errors.New("invalid schedule type")
	ErrPastStartDate      = errors.New("start date must not be in the past")
	ErrPaymentExceedsGoal = errors.New("payment exceeds goal target")

	ErrGoalAlreadyCompleted    = errors.New("saving goal already completed")
	ErrForbiddenIncompleteGoal = errors.New("saving goal is not completed yet")
	ErrGoalAlreadyWithdrawn    = errors.New("saving goal has no funds left to withdraw")

	ErrNothingToSettle = errors.New("no approved chores to settle")
	ErrNothingDue      = errors.New("no payment due")

	ErrPaymentRejected = errors.New("payment rejected by processor")
	ErrProcessorBusy   = errors.New("payment processor busy, try again later")
	ErrPaymentFailed   = errors.New("payment failed")

	// ErrSettlementAfterCharge means the external charge succeeded but the
	// local settlement did not commit. Operational alert class: the money
	// moved and the books did not. Never swallowed, always logged with full
	// reconciliation context.
	ErrSettlementAfterCharge = errors.New("payment succeeded but settlement failed")
)

// NewPaymentExceedsGoal wraps ErrPaymentExceedsGoal with the remaining
// capacity, e.g. "you can only add $10 more".
func NewPaymentExceedsGoal(remainingCents int64) error {
	return fmt.Errorf("%w: you can only add %s more", ErrPaymentExceedsGoal, FormatCents(remainingCents))
}

// FormatCents renders integer cents as a dollar string, dropping the
// fraction when whole: 1000 -> "$10", 1001 -> "$10.01".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	if cents%100 == 0 {
		return fmt.Sprintf("%s$%d", sign, cents/100)
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
