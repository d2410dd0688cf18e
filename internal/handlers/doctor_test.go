package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinicport/backend/internal/model"
)

func TestCreateDoctor(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(store)

	body := `{"name":"Dr. Lee","email":"lee@clinic.com","specialty":"Cleaning","image":"https://img/lee.png"}`
	req := httptest.NewRequest(http.MethodPost, "/doctors", strings.NewReader(body))
	rw := httptest.NewRecorder()
	h.CreateDoctor(rw, req)

	if rw.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rw.Code, rw.Body.String())
	}
	var created model.Doctor
	if err := json.NewDecoder(rw.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" || created.Specialty != "Cleaning" {
		t.Fatalf("unexpected doctor: %+v", created)
	}
	if len(store.doctors) != 1 {
		t.Fatalf("doctor not stored")
	}
}

func TestCreateDoctor_RejectsMissingFields(t *testing.T) {
	h := newTestHandler(newFakeStore())

	for _, body := range []string{
		`not json`,
		`{"name":"","email":"lee@clinic.com","specialty":"Cleaning"}`,
		`{"name":"Dr. Lee","email":"","specialty":"Cleaning"}`,
		`{"name":"Dr. Lee","email":"lee@clinic.com","specialty":"  "}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/doctors", strings.NewReader(body))
		rw := httptest.NewRecorder()
		h.CreateDoctor(rw, req)
		if rw.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rw.Code)
		}
	}
}

func TestDeleteDoctor(t *testing.T) {
	store := newFakeStore()
	store.doctors["d1"] = model.Doctor{ID: "d1", Name: "Dr. Lee", Email: "lee@clinic.com", Specialty: "Cleaning"}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodDelete, "/doctors/d1", nil)
	req.SetPathValue("id", "d1")
	rw := httptest.NewRecorder()
	h.DeleteDoctor(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
	if len(store.doctors) != 0 {
		t.Fatalf("doctor not removed")
	}

	// Deleting again reports not found.
	rw = httptest.NewRecorder()
	h.DeleteDoctor(rw, req)
	if rw.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rw.Code)
	}
}
