package domain

import "time"

type ChoreStatus string

const (
	ChoreStatusUnclaimed  ChoreStatus = "UNCLAIMED"
	ChoreStatusInProgress ChoreStatus = "IN_PROGRESS"
	ChoreStatusPending    ChoreStatus = "PENDING"
	ChoreStatusApproved   ChoreStatus = "APPROVED"
	ChoreStatusCompleted  ChoreStatus = "COMPLETED"
	ChoreStatusRejected   ChoreStatus = "REJECTED"
)

// Chore carries only the fields the settlement core depends on. The full
// chore workflow (creation, claiming, approval) lives outside this service.
// EarnCents is fixed at creation; a COMPLETED chore never transitions back
// to APPROVED, so its reward can never be settled twice.
type Chore struct {
	ID               int32       `json:"id"`
	ParentID         int32       `json:"parent_id"`
	KidID            *int32      `json:"kid_id,omitempty"`
	Title            string      `json:"title"`
	EarnCents        int64       `json:"earn_cents"`
	Status           ChoreStatus `json:"status"`
	IsRewardApproved bool        `json:"is_reward_approved"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// SettlementResult reports one batched settlement of approved chores.
type SettlementResult struct {
	KidID            int32   `json:"kid_id"`
	ParentID         int32   `json:"parent_id"`
	ChoreIDs         []int32 `json:"chore_ids"`
	TotalAmountCents int64   `json:"total_amount_cents"`
	Wallet           *Wallet `json:"wallet"`
}
