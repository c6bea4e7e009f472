package domain

import "time"

// Wallet is the per-kid spendable balance plus a lifetime earnings counter.
// The balance is a cached projection of the ledger; every mutation goes
// through the wallet service so a matching ledger entry is always written.
type Wallet struct {
	ID                 int32     `json:"id"`
	KidID              int32     `json:"kid_id"`
	MainBalanceCents   int64     `json:"main_balance_cents"`
	TotalEarningsCents int64     `json:"total_earnings_cents"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
