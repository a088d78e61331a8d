package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockOptionRepo, *echo.Echo) {
	repo := catalogFixture()
	h := NewHandler(NewService(repo))
	e := echo.New()
	return h, repo, e
}

func TestHandler_ListOptions(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.book("2024-01-10", "Cardiology", "09:00 AM")

	req := httptest.NewRequest(http.MethodGet, "/appointmentOptions?date=2024-01-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListOptions(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var opts []AppointmentOption
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	if len(opts[0].Slots) != 2 {
		t.Errorf("expected booked slot removed, got %v", opts[0].Slots)
	}
}

func TestHandler_ListOptionsV2(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.book("2024-01-10", "Dental", "08:00 AM")

	req := httptest.NewRequest(http.MethodGet, "/v2/appointmentOptions?date=2024-01-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListOptionsV2(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var opts []AppointmentOption
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(opts[1].Slots) != 1 || opts[1].Slots[0] != "09:00 AM" {
		t.Errorf("expected Dental reduced to 09:00 AM, got %v", opts[1].Slots)
	}
}

func TestHandler_ListSpecialties(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/specialty", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListSpecialties(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var names []Specialty
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 specialties, got %d", len(names))
	}
	if names[0].Name == "" || names[0].ID.String() == "" {
		t.Error("expected id and name in projection")
	}
}

func TestHandler_ListSpecialties_EmptyCatalog(t *testing.T) {
	repo := newMockOptionRepo()
	h := NewHandler(NewService(repo))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/specialty", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListSpecialties(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Body.String() != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", rec.Body.String())
	}
}
