package domain

import "time"

// SavingGoal is a kid-defined target funded by wallet debits. The
// accumulated total never exceeds the target; completion flips exactly when
// the total reaches the target. Amounts are integer cents, so reaching the
// target is exact equality, not a float tolerance.
type SavingGoal struct {
	ID                   int32        `json:"id"`
	KidID                int32        `json:"kid_id"`
	Title                string       `json:"title"`
	StartDate            time.Time    `json:"start_date"`
	EndDate              time.Time    `json:"end_date"`
	TotalSavingCents     int64        `json:"total_saving_cents"`
	Schedule             ScheduleType `json:"schedule"`
	AmountFrequencyCents int64        `json:"amount_frequency_cents"`
	CurrentAmountCents   int64        `json:"current_amount_cents"`
	IsCompleted          bool         `json:"is_completed"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// GoalPayment is one contribution toward a goal.
type GoalPayment struct {
	ID                 int32     `json:"id"`
	GoalID             int32     `json:"goal_id"`
	AmountCents        int64     `json:"amount_cents"`
	PaidAt             time.Time `json:"paid_at"`
	IsScheduledPayment bool      `json:"is_scheduled_payment"`
}

// RemainingCents is the gap left to the target.
func (g *SavingGoal) RemainingCents() int64 {
	return g.TotalSavingCents - g.CurrentAmountCents
}

// ProgressPercent reports completion as 0..100, clamped. A non-positive
// target yields 0 rather than dividing by zero.
func (g *SavingGoal) ProgressPercent() float64 {
	if g.TotalSavingCents <= 0 {
		return 0
	}
	pct := float64(g.CurrentAmountCents) / float64(g.TotalSavingCents) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ProjectEndDate computes the date by which contributions of
// amountPerPeriod every schedule period reach the target:
// periods = ceil(total / amountPerPeriod), projected from startDate.
func ProjectEndDate(startDate time.Time, totalCents, amountPerPeriodCents int64, schedule ScheduleType) time.Time {
	periods := int(totalCents / amountPerPeriodCents)
	if totalCents%amountPerPeriodCents != 0 {
		periods++
	}
	return schedule.AddPeriods(startDate, periods)
}
