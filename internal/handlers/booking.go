package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/internal/storage"
)

type createBookingRequest struct {
	Email           string `json:"email"`
	PatientName     string `json:"patientName"`
	AppointmentDate string `json:"appointmentDate"`
	Treatment       string `json:"treatment"`
	Slot            string `json:"slot"`
	Price           int    `json:"price"`
}

type createBookingResponse struct {
	Acknowledge bool   `json:"acknowledge"`
	BookingID   string `json:"bookingId,omitempty"`
	Message     string `json:"message,omitempty"`
}

// CreateBooking handles POST /bookings. A patient gets at most one booking per
// (email, appointment date, treatment) regardless of slot; the store's
// uniqueness constraint makes the decision, so there is no window where two
// concurrent requests both pass a pre-check.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json body"})
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.AppointmentDate = strings.TrimSpace(req.AppointmentDate)
	req.Treatment = strings.TrimSpace(req.Treatment)
	req.Slot = strings.TrimSpace(req.Slot)
	if req.Email == "" || req.AppointmentDate == "" || req.Treatment == "" || req.Slot == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "email, appointmentDate, treatment and slot are required"})
		return
	}

	booking := &model.Booking{
		ID:              uuid.NewString(),
		Email:           req.Email,
		PatientName:     strings.TrimSpace(req.PatientName),
		AppointmentDate: req.AppointmentDate,
		Treatment:       req.Treatment,
		Slot:            req.Slot,
		Price:           req.Price,
	}

	err := h.bookings.Create(r.Context(), booking)
	if errors.Is(err, storage.ErrDuplicateBooking) {
		writeJSON(w, http.StatusConflict, createBookingResponse{
			Acknowledge: false,
			Message:     fmt.Sprintf("You already have an appointment on %s", req.AppointmentDate),
		})
		return
	}
	if err != nil {
		h.logger.Error("booking create failed", "err", err, "treatment", req.Treatment)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to create booking"})
		return
	}

	writeJSON(w, http.StatusCreated, createBookingResponse{Acknowledge: true, BookingID: booking.ID})
}

// MyAppointments handles GET /myAppointment?email=E. The caller only ever
// sees their own bookings: the query email must match the authenticated one,
// admin or not.
func (h *Handler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email != emailFromContext(r.Context()) {
		writeJSON(w, http.StatusForbidden, messageResponse{Message: "forbidden access"})
		return
	}

	bookings, err := h.bookings.ListByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("bookings load failed", "err", err, "email", email)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load bookings"})
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
