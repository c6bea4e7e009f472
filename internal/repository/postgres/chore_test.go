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

func TestSumApprovedEarnings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewChoreRepository(db)
	ctx := context.Background()

	t.Run("sums approved chores", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1250))

		total, err := repo.SumApprovedEarnings(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(1250), total)
	})

	t.Run("no approved chores sums to zero", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE`).
			WithArgs(int32(8)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		total, err := repo.SumApprovedEarnings(ctx, 8)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimApprovedForSettlement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewChoreRepository(db)
	ctx := context.Background()

	choreCols := []string{"id", "parent_id", "kid_id", "title", "earn_cents", "status", "is_reward_approved", "created_at", "updated_at"}

	t.Run("claims and returns completed rows", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`UPDATE chores`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows(choreCols).
				AddRow(11, 2, 7, "Dishes", 500, "COMPLETED", true, now, now).
				AddRow(12, 2, 7, "Vacuum", 750, "COMPLETED", true, now, now))

		chores, err := repo.ClaimApprovedForSettlement(ctx, 7)
		require.NoError(t, err)
		require.Len(t, chores, 2)
		assert.Equal(t, domain.ChoreStatusCompleted, chores[0].Status)
		assert.Equal(t, int64(500), chores[0].EarnCents)
	})

	t.Run("second claim matches nothing", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE chores`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows(choreCols))

		chores, err := repo.ClaimApprovedForSettlement(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, chores)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
