package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/libs/db"
)

type UserRepository struct {
	pool *db.Pool
}

func NewUserRepository(pool *db.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, role)
		VALUES ($1, $2, $3, $4)
	`, u.ID, u.Email, u.Name, u.Role)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, role
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, name, role FROM users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// PromoteAdmin upserts role=admin for the user id. Promoting an id that is
// already admin, or one with no record yet, both succeed; role changes are
// promotion-only so the upsert never demotes.
func (r *UserRepository) PromoteAdmin(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, role)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role
	`, id, model.RoleAdmin)
	return err
}
