package postgres

import (
	"context"
	"testing"
	"time"

	"chorebank-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goalColumns = []string{"id", "kid_id", "title", "start_date", "end_date", "total_saving_cents", "schedule",
	"amount_frequency_cents", "current_amount_cents", "is_completed", "created_at", "updated_at"}

func goalRow(current int64, completed bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(goalColumns).
		AddRow(3, 7, "New bike", now, now.AddDate(0, 1, 0), 10000, "WEEKLY", 2500, current, completed, now, now)
}

func TestApplyContribution(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSavingGoalRepository(db)
	ctx := context.Background()

	t.Run("within the target updates and may complete", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE saving_goals`).
			WithArgs(int32(3), int64(1000)).
			WillReturnRows(goalRow(10000, true))

		goal, err := repo.ApplyContribution(ctx, 3, 1000)
		require.NoError(t, err)
		assert.True(t, goal.IsCompleted)
		assert.Equal(t, int64(10000), goal.CurrentAmountCents)
	})

	t.Run("guarded update refuses an overshoot", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE saving_goals`).
			WithArgs(int32(3), int64(5000)).
			WillReturnRows(sqlmock.NewRows(goalColumns))

		_, err := repo.ApplyContribution(ctx, 3, 5000)
		assert.ErrorIs(t, err, domain.ErrPaymentExceedsGoal)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavingGoalDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSavingGoalRepository(db)
	ctx := context.Background()

	t.Run("deletes an owned goal", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM saving_goals`).
			WithArgs(int32(3), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, 7, 3))
	})

	t.Run("another kid's goal is not found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM saving_goals`).
			WithArgs(int32(3), int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 99, 3)
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavingGoalGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSavingGoalRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id, kid_id, title`).
		WithArgs(int32(3)).
		WillReturnRows(goalRow(2500, false))

	goal, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleWeekly, goal.Schedule)
	assert.Equal(t, int64(7500), goal.RemainingCents())
	require.NoError(t, mock.ExpectationsWereMet())
}
