package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinicport/backend/internal/model"
)

func TestCreateUser_NewAndDuplicate(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@x.com","name":"Ada"}`))
	rw := httptest.NewRecorder()
	h.CreateUser(rw, req)

	if rw.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rw.Code, rw.Body.String())
	}
	var created model.User
	if err := json.NewDecoder(rw.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" || created.Role != model.RolePatient {
		t.Fatalf("unexpected user: %+v", created)
	}

	req = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@x.com","name":"Ada"}`))
	rw = httptest.NewRecorder()
	h.CreateUser(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200 for duplicate signup, got %d", rw.Code)
	}
	var resp messageResponse
	if err := json.NewDecoder(rw.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "already a user" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if len(store.users) != 1 {
		t.Fatalf("duplicate signup must not add a record, have %d", len(store.users))
	}
}

func TestCreateUser_RequiresEmail(t *testing.T) {
	h := newTestHandler(newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"  ","name":"Ada"}`))
	rw := httptest.NewRecorder()
	h.CreateUser(rw, req)

	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}
}

func TestIsAdmin(t *testing.T) {
	store := newFakeStore()
	store.users["boss@x.com"] = model.User{ID: "u1", Email: "boss@x.com", Role: model.RoleAdmin}
	store.users["pat@x.com"] = model.User{ID: "u2", Email: "pat@x.com", Role: model.RolePatient}
	h := newTestHandler(store)

	cases := []struct {
		email string
		want  bool
	}{
		{"boss@x.com", true},
		{"pat@x.com", false},
		{"nobody@x.com", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/users/admin/"+tc.email, nil)
		req.SetPathValue("email", tc.email)
		rw := httptest.NewRecorder()
		h.IsAdmin(rw, req)

		if rw.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.email, rw.Code)
		}
		var resp map[string]bool
		if err := json.NewDecoder(rw.Body).Decode(&resp); err != nil {
			t.Fatalf("%s: decode response: %v", tc.email, err)
		}
		if resp["isAdmin"] != tc.want {
			t.Fatalf("%s: expected isAdmin=%v, got %v", tc.email, tc.want, resp["isAdmin"])
		}
	}
}

func TestPromoteAdmin_IsIdempotentUpsert(t *testing.T) {
	store := newFakeStore()
	store.usersByID["u1"] = model.User{ID: "u1", Email: "pat@x.com", Role: model.RolePatient}
	store.users["pat@x.com"] = store.usersByID["u1"]
	h := newTestHandler(store)

	promote := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/users/admin/"+id, nil)
		req.SetPathValue("id", id)
		rw := httptest.NewRecorder()
		h.PromoteAdmin(rw, req)
		return rw
	}

	// Promote an existing patient, then again, then an id with no record.
	for _, id := range []string{"u1", "u1", "ghost"} {
		rw := promote(id)
		if rw.Code != http.StatusOK {
			t.Fatalf("promote %s: expected 200, got %d", id, rw.Code)
		}
		var resp map[string]bool
		if err := json.NewDecoder(rw.Body).Decode(&resp); err != nil {
			t.Fatalf("promote %s: decode response: %v", id, err)
		}
		if !resp["acknowledged"] {
			t.Fatalf("promote %s: expected acknowledged", id)
		}
	}

	if store.usersByID["u1"].Role != model.RoleAdmin {
		t.Fatalf("u1 should be admin, got %q", store.usersByID["u1"].Role)
	}
	if store.usersByID["ghost"].Role != model.RoleAdmin {
		t.Fatalf("ghost should hold an admin placeholder, got %+v", store.usersByID["ghost"])
	}
}

func TestPromoteAdmin_RequiresID(t *testing.T) {
	h := newTestHandler(newFakeStore())

	req := httptest.NewRequest(http.MethodPut, "/users/admin/", nil)
	rw := httptest.NewRecorder()
	h.PromoteAdmin(rw, req)

	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}
}
