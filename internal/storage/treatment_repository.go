package storage

import (
	"context"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/libs/db"
)

type TreatmentRepository struct {
	pool *db.Pool
}

func NewTreatmentRepository(pool *db.Pool) *TreatmentRepository {
	return &TreatmentRepository{pool: pool}
}

// List returns the whole catalog in configured order. The catalog is small
// enough to load wholesale on every availability query.
func (r *TreatmentRepository) List(ctx context.Context) ([]model.Treatment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slots, price, created_at
		FROM treatments
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var treatments []model.Treatment
	for rows.Next() {
		var t model.Treatment
		if err := rows.Scan(&t.ID, &t.Name, &t.Slots, &t.Price, &t.CreatedAt); err != nil {
			return nil, err
		}
		treatments = append(treatments, t)
	}
	return treatments, rows.Err()
}

// Create adds a catalog entry. Names are unique; a clash maps to
// ErrDuplicateTreatment.
func (r *TreatmentRepository) Create(ctx context.Context, t model.Treatment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO treatments (id, name, slots, price)
		VALUES ($1, $2, $3, $4)
	`, t.ID, t.Name, t.Slots, t.Price)
	if isUniqueViolation(err) {
		return ErrDuplicateTreatment
	}
	return err
}
