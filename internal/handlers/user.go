package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/internal/storage"
)

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateUser handles POST /users: first-signup registration. Re-posting an
// existing email is acknowledged without creating a second record.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json body"})
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "email is required"})
		return
	}

	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		writeJSON(w, http.StatusOK, messageResponse{Message: "already a user"})
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.logger.Error("user lookup failed", "err", err, "email", req.Email)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load user"})
		return
	}

	user := model.User{
		ID:    uuid.NewString(),
		Email: req.Email,
		Name:  strings.TrimSpace(req.Name),
		Role:  model.RolePatient,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		h.logger.Error("user create failed", "err", err, "email", req.Email)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to create user"})
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("users load failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load users"})
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// IsAdmin handles GET /users/admin/{email}. An absent user is simply not an
// admin; the check never fails on a missing record.
func (h *Handler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.logger.Error("user lookup failed", "err", err, "email", email)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load user"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": err == nil && user.Role == model.RoleAdmin})
}

// PromoteAdmin handles PUT /users/admin/{id}: an idempotent upsert to
// role=admin. Promoting an already-admin or unknown id succeeds quietly.
func (h *Handler) PromoteAdmin(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "user id is required"})
		return
	}
	if err := h.users.PromoteAdmin(r.Context(), id); err != nil {
		h.logger.Error("promote failed", "err", err, "user_id", id)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to promote user"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"acknowledged": true})
}
