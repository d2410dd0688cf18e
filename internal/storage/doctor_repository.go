package storage

import (
	"context"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/libs/db"
)

type DoctorRepository struct {
	pool *db.Pool
}

func NewDoctorRepository(pool *db.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

func (r *DoctorRepository) Create(ctx context.Context, d model.Doctor) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctors (id, name, email, specialty, image_url)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, d.Name, d.Email, d.Specialty, d.ImageURL)
	return err
}

func (r *DoctorRepository) List(ctx context.Context) ([]model.Doctor, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email, specialty, image_url FROM doctors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Specialty, &d.ImageURL); err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

// Delete reports whether a row was actually removed.
func (r *DoctorRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
