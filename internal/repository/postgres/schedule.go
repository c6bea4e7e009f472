package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/repository"
)

type paymentScheduleRepository struct {
	db DBTX
}

func NewPaymentScheduleRepository(db DBTX) repository.PaymentScheduleRepository {
	return &paymentScheduleRepository{db: db}
}

const scheduleColumns = `id, parent_id, schedule_type, start_date, next_due_date, status,
	last_reminder_on, last_due_notice_on, last_overdue_on, created_at, updated_at`

func scanSchedule(row interface{ Scan(...any) error }) (*domain.PaymentSchedule, error) {
	var s domain.PaymentSchedule
	err := row.Scan(&s.ID, &s.ParentID, &s.ScheduleType, &s.StartDate, &s.NextDueDate, &s.Status,
		&s.LastReminderOn, &s.LastDueNoticeOn, &s.LastOverdueOn, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *paymentScheduleRepository) Create(ctx context.Context, schedule *domain.PaymentSchedule) error {
	query := `INSERT INTO payment_schedules (parent_id, schedule_type, start_date, next_due_date, status)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		schedule.ParentID, schedule.ScheduleType, schedule.StartDate, schedule.NextDueDate, schedule.Status).
		Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
}

func (r *paymentScheduleRepository) GetActiveByParent(ctx context.Context, parentID int32) (*domain.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedules
	          WHERE parent_id = $1 AND status = 'ACTIVE'
	          ORDER BY created_at DESC LIMIT 1`
	s, err := scanSchedule(r.db.QueryRowContext(ctx, query, parentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrScheduleNotFound
	}
	return s, err
}

func (r *paymentScheduleRepository) ListActive(ctx context.Context) ([]domain.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedules WHERE status = 'ACTIVE' ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.PaymentSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}
	return schedules, rows.Err()
}

// AdvanceDueDate only moves the due date forward; a stale caller whose
// target is not strictly later than the stored value matches no row.
func (r *paymentScheduleRepository) AdvanceDueDate(ctx context.Context, scheduleID int32, nextDueDate time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE payment_schedules SET next_due_date = $2, updated_at = NOW()
		 WHERE id = $1 AND next_due_date < $2`, scheduleID, nextDueDate)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

// MarkNotified claims one notification category for the day with a guarded
// update, so overlapping sweep runs never double-notify.
func (r *paymentScheduleRepository) MarkNotified(ctx context.Context, scheduleID int32, category domain.DueCategory, day time.Time) (bool, error) {
	var column string
	switch category {
	case domain.DueCategoryReminder:
		column = "last_reminder_on"
	case domain.DueCategoryDueToday:
		column = "last_due_notice_on"
	case domain.DueCategoryOverdue:
		column = "last_overdue_on"
	default:
		return false, fmt.Errorf("unknown due category %q", category)
	}

	query := fmt.Sprintf(
		`UPDATE payment_schedules SET %s = $2, updated_at = NOW()
		 WHERE id = $1 AND (%s IS NULL OR %s <> $2)`, column, column, column)
	result, err := r.db.ExecContext(ctx, query, scheduleID, day.Format("2006-01-02"))
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
