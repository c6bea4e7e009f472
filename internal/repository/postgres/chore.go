package postgres

import (
	"context"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/repository"
)

type choreRepository struct {
	db DBTX
}

func NewChoreRepository(db DBTX) repository.ChoreRepository {
	return &choreRepository{db: db}
}

func (r *choreRepository) SumApprovedEarnings(ctx context.Context, kidID int32) (int64, error) {
	query := `SELECT COALESCE(SUM(earn_cents), 0) FROM chores WHERE kid_id = $1 AND status = 'APPROVED'`
	var total int64
	err := r.db.QueryRowContext(ctx, query, kidID).Scan(&total)
	return total, err
}

// ClaimApprovedForSettlement moves every APPROVED chore for the kid to
// COMPLETED in a single conditional update. Two concurrent settlements
// cannot both claim the same chores: the second statement matches zero rows
// once the first commits, and a rollback restores the APPROVED status.
func (r *choreRepository) ClaimApprovedForSettlement(ctx context.Context, kidID int32) ([]domain.Chore, error) {
	query := `UPDATE chores
	          SET status = 'COMPLETED', updated_at = NOW()
	          WHERE kid_id = $1 AND status = 'APPROVED'
	          RETURNING id, parent_id, kid_id, title, earn_cents, status, is_reward_approved, created_at, updated_at`
	rows, err := r.db.QueryContext(ctx, query, kidID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chores []domain.Chore
	for rows.Next() {
		var c domain.Chore
		if err := rows.Scan(&c.ID, &c.ParentID, &c.KidID, &c.Title, &c.EarnCents, &c.Status, &c.IsRewardApproved, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		chores = append(chores, c)
	}
	return chores, rows.Err()
}
