package postgres

import (
	"context"
	"database/sql"
	"errors"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/repository"
)

type savingGoalRepository struct {
	db DBTX
}

func NewSavingGoalRepository(db DBTX) repository.SavingGoalRepository {
	return &savingGoalRepository{db: db}
}

const savingGoalColumns = `id, kid_id, title, start_date, end_date, total_saving_cents, schedule,
	amount_frequency_cents, current_amount_cents, is_completed, created_at, updated_at`

func scanSavingGoal(row interface{ Scan(...any) error }) (*domain.SavingGoal, error) {
	var g domain.SavingGoal
	err := row.Scan(&g.ID, &g.KidID, &g.Title, &g.StartDate, &g.EndDate, &g.TotalSavingCents,
		&g.Schedule, &g.AmountFrequencyCents, &g.CurrentAmountCents, &g.IsCompleted, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *savingGoalRepository) Create(ctx context.Context, goal *domain.SavingGoal) error {
	query := `INSERT INTO saving_goals (kid_id, title, start_date, end_date, total_saving_cents, schedule, amount_frequency_cents)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		goal.KidID, goal.Title, goal.StartDate, goal.EndDate, goal.TotalSavingCents, goal.Schedule, goal.AmountFrequencyCents).
		Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
}

func (r *savingGoalRepository) GetByID(ctx context.Context, goalID int32) (*domain.SavingGoal, error) {
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE id = $1`
	goal, err := scanSavingGoal(r.db.QueryRowContext(ctx, query, goalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGoalNotFound
	}
	return goal, err
}

func (r *savingGoalRepository) GetByIDForUpdate(ctx context.Context, goalID int32) (*domain.SavingGoal, error) {
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE id = $1 FOR UPDATE`
	goal, err := scanSavingGoal(r.db.QueryRowContext(ctx, query, goalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGoalNotFound
	}
	return goal, err
}

func (r *savingGoalRepository) ListByKid(ctx context.Context, kidID int32, page, pageSize int32) ([]domain.SavingGoal, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE kid_id = $1
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, kidID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var goals []domain.SavingGoal
	for rows.Next() {
		goal, err := scanSavingGoal(rows)
		if err != nil {
			return nil, 0, err
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM saving_goals WHERE kid_id = $1`, kidID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return goals, count, nil
}

func (r *savingGoalRepository) Delete(ctx context.Context, kidID, goalID int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saving_goals WHERE id = $1 AND kid_id = $2`, goalID, kidID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// ApplyContribution is the optimistic guard against concurrent overshoot:
// the update only matches while the goal is open and the new total stays
// within the target, and completion is decided in the same statement.
func (r *savingGoalRepository) ApplyContribution(ctx context.Context, goalID int32, amountCents int64) (*domain.SavingGoal, error) {
	query := `UPDATE saving_goals
	          SET current_amount_cents = current_amount_cents + $2,
	              is_completed = (current_amount_cents + $2 >= total_saving_cents),
	              updated_at = NOW()
	          WHERE id = $1 AND NOT is_completed AND current_amount_cents + $2 <= total_saving_cents
	          RETURNING ` + savingGoalColumns
	goal, err := scanSavingGoal(r.db.QueryRowContext(ctx, query, goalID, amountCents))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPaymentExceedsGoal
	}
	return goal, err
}

func (r *savingGoalRepository) AddPayment(ctx context.Context, payment *domain.GoalPayment) error {
	query := `INSERT INTO goal_payments (goal_id, amount_cents, paid_at, is_scheduled_payment)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		payment.GoalID, payment.AmountCents, payment.PaidAt, payment.IsScheduledPayment).
		Scan(&payment.ID)
}

func (r *savingGoalRepository) ListPayments(ctx context.Context, goalID int32) ([]domain.GoalPayment, error) {
	query := `SELECT id, goal_id, amount_cents, paid_at, is_scheduled_payment
	          FROM goal_payments WHERE goal_id = $1 ORDER BY paid_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.GoalPayment
	for rows.Next() {
		var p domain.GoalPayment
		if err := rows.Scan(&p.ID, &p.GoalID, &p.AmountCents, &p.PaidAt, &p.IsScheduledPayment); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *savingGoalRepository) ResetAmount(ctx context.Context, goalID int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE saving_goals SET current_amount_cents = 0, updated_at = NOW() WHERE id = $1`, goalID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}
