package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/clinicport/backend/internal/model"
	"github.com/clinicport/backend/internal/storage"
	"github.com/clinicport/backend/libs/auth"
)

type ctxKey int

const ctxKeyEmail ctxKey = iota

func emailFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyEmail).(string)
	return v
}

// RequireAuth rejects a request with no Authorization header outright (401)
// before any token parsing, and a malformed, forged or expired bearer token
// with 403. On success the verified email rides on the request context.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "unauthorized access"})
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeJSON(w, http.StatusForbidden, messageResponse{Message: "forbidden access"})
			return
		}
		claims, err := auth.ParseAndVerifyHS256(strings.TrimSpace(token), h.jwtSecret)
		if err != nil {
			writeJSON(w, http.StatusForbidden, messageResponse{Message: "forbidden access"})
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyEmail, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin loads the user record for the authenticated email and admits
// only role=admin. A missing record is forbidden, not a crash: the gate never
// dereferences a role on an absent user. Apply inside RequireAuth.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := emailFromContext(r.Context())
		user, err := h.users.GetByEmail(r.Context(), email)
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusForbidden, messageResponse{Message: "forbidden access"})
			return
		}
		if err != nil {
			h.logger.Error("role check failed", "err", err, "email", email)
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to check role"})
			return
		}
		if user.Role != model.RoleAdmin {
			writeJSON(w, http.StatusForbidden, messageResponse{Message: "forbidden access"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// IssueToken handles GET /jwt?email=E. A known email gets a signed 7-day
// token; an unknown one gets an explicit empty credential, never a hard error.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "email is required"})
		return
	}

	_, err := h.users.GetByEmail(r.Context(), email)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusForbidden, tokenResponse{AccessToken: ""})
		return
	}
	if err != nil {
		h.logger.Error("user lookup failed", "err", err, "email", email)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to load user"})
		return
	}

	token, err := auth.SignHS256(auth.NewClaims(email, time.Now()), h.jwtSecret)
	if err != nil {
		h.logger.Error("token signing failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "failed to issue token"})
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}
