package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/internal/outbox"
	"github.com/clinicport/backend/libs/db"
)

type BookingRepository struct {
	pool   *db.Pool
	outbox *outbox.Repository
}

func NewBookingRepository(pool *db.Pool, outboxRepo *outbox.Repository) *BookingRepository {
	return &BookingRepository{pool: pool, outbox: outboxRepo}
}

// Create admits the booking or rejects it atomically. The bookings table
// carries UNIQUE (email, appointment_date, treatment), so two concurrent
// requests for the same triple cannot both insert; the loser gets
// ErrDuplicateBooking straight from the constraint, with no pre-check race.
// The created event goes into the outbox in the same transaction.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings
			(id, email, patient_name, appointment_date, treatment, slot, price, paid, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, '')
	`, b.ID, b.Email, b.PatientName, b.AppointmentDate, b.Treatment, b.Slot, b.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBooking
		}
		return err
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id":       b.ID,
		"email":            b.Email,
		"treatment":        b.Treatment,
		"appointment_date": b.AppointmentDate,
		"slot":             b.Slot,
		"created_at":       time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if err := r.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   b.ID,
		EventType:     outbox.EventBookingCreated,
		Payload:       payload,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByDate returns the bookings consuming slots on one date label.
func (r *BookingRepository) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	return r.list(ctx, `WHERE appointment_date = $1`, date)
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return r.list(ctx, `WHERE email = $1`, email)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (model.Booking, error) {
	var b model.Booking
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, patient_name, appointment_date, treatment, slot, price, paid, transaction_id, created_at
		FROM bookings
		WHERE id = $1
	`, id).Scan(&b.ID, &b.Email, &b.PatientName, &b.AppointmentDate, &b.Treatment, &b.Slot,
		&b.Price, &b.Paid, &b.TransactionID, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// DistinctTreatments lists the treatment names present in bookings, for the
// specialty picker.
func (r *BookingRepository) DistinctTreatments(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT treatment FROM bookings ORDER BY treatment`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *BookingRepository) list(ctx context.Context, where string, arg any) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, patient_name, appointment_date, treatment, slot, price, paid, transaction_id, created_at
		FROM bookings `+where+`
		ORDER BY created_at, id
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Email, &b.PatientName, &b.AppointmentDate, &b.Treatment, &b.Slot,
			&b.Price, &b.Paid, &b.TransactionID, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
