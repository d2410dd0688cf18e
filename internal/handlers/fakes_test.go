package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/internal/storage"
)

const testSecret = "test-secret"

// fakeStore is an in-memory stand-in for the storage repositories. It mirrors
// the store's behavior at the contract level, including the uniqueness rule on
// (email, appointment date, treatment) and transactional payment semantics.
type fakeStore struct {
	treatments []model.Treatment
	bookings   []model.Booking
	users      map[string]model.User // by email
	usersByID  map[string]model.User
	doctors    map[string]model.Doctor
	payments   []model.Payment

	failWith error // when set, every call errors
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[string]model.User{},
		usersByID: map[string]model.User{},
		doctors:   map[string]model.Doctor{},
	}
}

func (s *fakeStore) List(context.Context) ([]model.Treatment, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.treatments, nil
}

func (s *fakeStore) CreateTreatment(_ context.Context, t model.Treatment) error {
	if s.failWith != nil {
		return s.failWith
	}
	for _, existing := range s.treatments {
		if existing.Name == t.Name {
			return storage.ErrDuplicateTreatment
		}
	}
	s.treatments = append(s.treatments, t)
	return nil
}

func (s *fakeStore) Create(ctx context.Context, b *model.Booking) error {
	if s.failWith != nil {
		return s.failWith
	}
	for _, existing := range s.bookings {
		if existing.Email == b.Email && existing.AppointmentDate == b.AppointmentDate && existing.Treatment == b.Treatment {
			return storage.ErrDuplicateBooking
		}
	}
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *fakeStore) ListByDate(_ context.Context, date string) ([]model.Booking, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []model.Booking
	for _, b := range s.bookings {
		if b.AppointmentDate == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) ListByEmail(_ context.Context, email string) ([]model.Booking, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []model.Booking
	for _, b := range s.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (model.Booking, error) {
	if s.failWith != nil {
		return model.Booking{}, s.failWith
	}
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, storage.ErrNotFound
}

func (s *fakeStore) DistinctTreatments(context.Context) ([]string, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	seen := map[string]bool{}
	var names []string
	for _, b := range s.bookings {
		if !seen[b.Treatment] {
			seen[b.Treatment] = true
			names = append(names, b.Treatment)
		}
	}
	return names, nil
}

func (s *fakeStore) CreateUser(_ context.Context, u model.User) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.users[u.Email] = u
	s.usersByID[u.ID] = u
	return nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	if s.failWith != nil {
		return model.User{}, s.failWith
	}
	u, ok := s.users[email]
	if !ok {
		return model.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) ListUsers(context.Context) ([]model.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []model.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeStore) PromoteAdmin(_ context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	u, ok := s.usersByID[id]
	if !ok {
		u = model.User{ID: id}
	}
	u.Role = model.RoleAdmin
	s.usersByID[id] = u
	if u.Email != "" {
		s.users[u.Email] = u
	}
	return nil
}

func (s *fakeStore) CreateDoctor(_ context.Context, d model.Doctor) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.doctors[d.ID] = d
	return nil
}

func (s *fakeStore) ListDoctors(context.Context) ([]model.Doctor, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []model.Doctor
	for _, d := range s.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeStore) DeleteDoctor(_ context.Context, id string) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	if _, ok := s.doctors[id]; !ok {
		return false, nil
	}
	delete(s.doctors, id)
	return true, nil
}

func (s *fakeStore) Reconcile(_ context.Context, p model.Payment) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, b := range s.bookings {
		if b.ID == p.BookingID {
			s.bookings[i].Paid = true
			s.bookings[i].TransactionID = p.TransactionID
			s.payments = append(s.payments, p)
			return nil
		}
	}
	return storage.ErrNotFound
}

// Interface adapters: the fake carries every store behind one struct, but the
// Handler wants distinct interfaces with clashing method names.
type (
	fakeTreatments struct{ *fakeStore }
	fakeUsers      struct{ *fakeStore }
	fakeDoctors    struct{ *fakeStore }
)

func (f fakeTreatments) Create(ctx context.Context, t model.Treatment) error {
	return f.CreateTreatment(ctx, t)
}

func (f fakeUsers) Create(ctx context.Context, u model.User) error { return f.CreateUser(ctx, u) }
func (f fakeUsers) List(ctx context.Context) ([]model.User, error) {
	return f.ListUsers(ctx)
}

func (f fakeDoctors) Create(ctx context.Context, d model.Doctor) error { return f.CreateDoctor(ctx, d) }
func (f fakeDoctors) List(ctx context.Context) ([]model.Doctor, error) {
	return f.ListDoctors(ctx)
}
func (f fakeDoctors) Delete(ctx context.Context, id string) (bool, error) {
	return f.DeleteDoctor(ctx, id)
}

func newTestHandler(store *fakeStore) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(fakeTreatments{store}, store, fakeUsers{store}, fakeDoctors{store}, store, logger, Config{
		JWTSecret: testSecret,
	})
}
