package domain

import "time"

type ChargeStatus string

const (
	ChargeStatusSucceeded ChargeStatus = "SUCCEEDED"
	ChargeStatusPending   ChargeStatus = "PENDING"
	ChargeStatusFailed    ChargeStatus = "FAILED"
)

// PaymentConfirmation is returned to the parent after a charge plus
// settlement round trip.
type PaymentConfirmation struct {
	ChargeID    string            `json:"charge_id"`
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Status      ChargeStatus      `json:"status"`
	ChargedAt   time.Time         `json:"charged_at"`
	Settlement  *SettlementResult `json:"settlement"`
}
