package postgres

import (
	"context"
	"database/sql"
	"errors"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetKid(ctx context.Context, kidID int32) (*domain.Kid, error) {
	query := `SELECT id, parent_id, name, COALESCE(device_token, ''), created_at FROM kids WHERE id = $1`
	var k domain.Kid
	err := r.db.QueryRowContext(ctx, query, kidID).
		Scan(&k.ID, &k.ParentID, &k.Name, &k.DeviceToken, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrKidNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *userRepository) GetParent(ctx context.Context, parentID int32) (*domain.Parent, error) {
	query := `SELECT id, name, email, COALESCE(device_token, ''), can_create, created_at FROM parents WHERE id = $1`
	var p domain.Parent
	err := r.db.QueryRowContext(ctx, query, parentID).
		Scan(&p.ID, &p.Name, &p.Email, &p.DeviceToken, &p.CanCreate, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) ListKidsByParent(ctx context.Context, parentID int32) ([]domain.Kid, error) {
	query := `SELECT id, parent_id, name, COALESCE(device_token, ''), created_at FROM kids WHERE parent_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kids []domain.Kid
	for rows.Next() {
		var k domain.Kid
		if err := rows.Scan(&k.ID, &k.ParentID, &k.Name, &k.DeviceToken, &k.CreatedAt); err != nil {
			return nil, err
		}
		kids = append(kids, k)
	}
	return kids, rows.Err()
}

func (r *userRepository) SetParentCanCreate(ctx context.Context, parentID int32, canCreate bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE parents SET can_create = $2 WHERE id = $1`, parentID, canCreate)
	return err
}
