package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicport/backend/internal/model"
)

type createDoctorRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
	ImageURL  string `json:"image"`
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req createDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Specialty = strings.TrimSpace(req.Specialty)
	if req.Name == "" || req.Email == "" || req.Specialty == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "name, email and specialty are required"})
		return
	}

	doctor := model.Doctor{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		ImageURL:  strings.TrimSpace(req.ImageURL),
	}
	if err := h.doctors.Create(r.Context(), doctor); err != nil {
		h.logger.Error("doctor create failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to create doctor"})
		return
	}
	writeJSON(w, http.StatusCreated, doctor)
}

func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctors.List(r.Context())
	if err != nil {
		h.logger.Error("doctors load failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load doctors"})
		return
	}
	if doctors == nil {
		doctors = []model.Doctor{}
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted, err := h.doctors.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("doctor delete failed", "err", err, "doctor_id", id)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to delete doctor"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "doctor not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"acknowledged": true})
}
