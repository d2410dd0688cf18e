package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/internal/outbox"
	"github.com/clinicport/backend/libs/db"
)

type PaymentRepository struct {
	pool   *db.Pool
	outbox *outbox.Repository
}

func NewPaymentRepository(pool *db.Pool, outboxRepo *outbox.Repository) *PaymentRepository {
	return &PaymentRepository{pool: pool, outbox: outboxRepo}
}

// Reconcile persists the payment record and flips the referenced booking to
// paid with the transaction id attached, as one transaction. When the booking
// no longer exists nothing commits and ErrNotFound is returned, so the caller
// never acknowledges a payment that left the booking unpaid.
func (r *PaymentRepository) Reconcile(ctx context.Context, p model.Payment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, booking_id, email, price, transaction_id)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.BookingID, p.Email, p.Price, p.TransactionID)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET paid = true, transaction_id = $2
		WHERE id = $1
	`, p.BookingID, p.TransactionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	payload, err := json.Marshal(map[string]any{
		"payment_id":     p.ID,
		"booking_id":     p.BookingID,
		"email":          p.Email,
		"price":          p.Price,
		"transaction_id": p.TransactionID,
		"recorded_at":    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if err := r.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "payment",
		AggregateID:   p.ID,
		EventType:     outbox.EventPaymentRecorded,
		Payload:       payload,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
