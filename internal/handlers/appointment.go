package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicport/backend/internal/availability"
	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/internal/storage"
)

// Appointments handles GET /appointments?date=D: the full treatment catalog
// with each treatment's slots reduced to the ones still open on D. Without a
// date there are no bookings to subtract and the untouched catalog comes back;
// that is deliberate, not an error.
func (h *Handler) Appointments(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.treatments.List(r.Context())
	if err != nil {
		h.logger.Error("catalog load failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load treatments"})
		return
	}

	var booked []model.Booking
	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		booked, err = h.bookings.ListByDate(r.Context(), date)
		if err != nil {
			h.logger.Error("bookings load failed", "err", err, "date", date)
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load bookings"})
			return
		}
	}

	if treatments == nil {
		treatments = []model.Treatment{}
	}
	writeJSON(w, http.StatusOK, availability.Remaining(treatments, booked))
}

type createTreatmentRequest struct {
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
	Price int      `json:"price"`
}

// CreateTreatment handles POST /treatments: a new catalog entry. Names are
// unique across the catalog.
func (h *Handler) CreateTreatment(w http.ResponseWriter, r *http.Request) {
	var req createTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Slots) == 0 {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "name and slots are required"})
		return
	}

	treatment := model.Treatment{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Slots: req.Slots,
		Price: req.Price,
	}
	err := h.treatments.Create(r.Context(), treatment)
	if errors.Is(err, storage.ErrDuplicateTreatment) {
		writeJSON(w, http.StatusConflict, messageResponse{Message: "treatment already exists"})
		return
	}
	if err != nil {
		h.logger.Error("treatment create failed", "err", err, "name", req.Name)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to create treatment"})
		return
	}
	writeJSON(w, http.StatusCreated, treatment)
}

// Specialty handles GET /specialty: the treatment names patients have booked,
// used by the frontend as a specialty picker.
func (h *Handler) Specialty(w http.ResponseWriter, r *http.Request) {
	names, err := h.bookings.DistinctTreatments(r.Context())
	if err != nil {
		h.logger.Error("specialty load failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load specialties"})
		return
	}
	if names == nil {
		names = []string{}
	}
	type specialtyItem struct {
		Treatment string `json:"treatment"`
	}
	items := make([]specialtyItem, 0, len(names))
	for _, name := range names {
		items = append(items, specialtyItem{Treatment: name})
	}
	writeJSON(w, http.StatusOK, items)
}
