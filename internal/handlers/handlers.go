package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clinicport/backend/internal/model"
)

// Store interfaces are satisfied by internal/storage; handler tests substitute
// in-memory fakes so the HTTP contract is exercised without a database.

type TreatmentStore interface {
	List(ctx context.Context) ([]model.Treatment, error)
	Create(ctx context.Context, t model.Treatment) error
}

type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	ListByDate(ctx context.Context, date string) ([]model.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]model.Booking, error)
	GetByID(ctx context.Context, id string) (model.Booking, error)
	DistinctTreatments(ctx context.Context) ([]string, error)
}

type UserStore interface {
	Create(ctx context.Context, u model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	PromoteAdmin(ctx context.Context, id string) error
}

type DoctorStore interface {
	Create(ctx context.Context, d model.Doctor) error
	List(ctx context.Context) ([]model.Doctor, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PaymentStore interface {
	Reconcile(ctx context.Context, p model.Payment) error
}

type Handler struct {
	treatments TreatmentStore
	bookings   BookingStore
	users      UserStore
	doctors    DoctorStore
	payments   PaymentStore
	logger     *slog.Logger
	jwtSecret  string
	stripeKey  string
}

type Config struct {
	JWTSecret       string
	StripeSecretKey string
}

func New(
	treatments TreatmentStore,
	bookings BookingStore,
	users UserStore,
	doctors DoctorStore,
	payments PaymentStore,
	logger *slog.Logger,
	cfg Config,
) *Handler {
	return &Handler{
		treatments: treatments,
		bookings:   bookings,
		users:      users,
		doctors:    doctors,
		payments:   payments,
		logger:     logger,
		jwtSecret:  cfg.JWTSecret,
		stripeKey:  cfg.StripeSecretKey,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type messageResponse struct {
	Message string `json:"message"`
}
