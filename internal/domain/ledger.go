package domain

import "time"

type TransactionDirection string

const (
	DirectionCredit TransactionDirection = "CREDIT"
	DirectionDebit  TransactionDirection = "DEBIT"
)

type TransactionName string

const (
	TransactionChorePayment      TransactionName = "CHORE_PAYMENT"
	TransactionSavingsDeposit    TransactionName = "SAVINGS_DEPOSIT"
	TransactionSavingsWithdrawal TransactionName = "SAVINGS_WITHDRAWAL"
	TransactionWithdrawal        TransactionName = "WITHDRAWAL"
)

// LedgerTransaction is append-only and immutable once written. Rows are
// never updated or deleted; corrections are new entries.
type LedgerTransaction struct {
	ID          int32                `json:"id"`
	KidID       int32                `json:"kid_id"`
	WalletID    int32                `json:"wallet_id"`
	Direction   TransactionDirection `json:"direction"`
	Name        TransactionName      `json:"transaction_name"`
	AmountCents int64                `json:"amount_cents"`
	Description string               `json:"description"`
	CreatedAt   time.Time            `json:"created_at"`
}

// SignedAmount returns the ledger delta as applied to the wallet balance.
func (t *LedgerTransaction) SignedAmount() int64 {
	if t.Direction == DirectionDebit {
		return -t.AmountCents
	}
	return t.AmountCents
}
