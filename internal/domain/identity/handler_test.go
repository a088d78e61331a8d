package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockUserRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func TestHandler_Register(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"name":"Jane","email":"jane@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !result.Acknowledged || result.InsertedID == "" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestHandler_Register_MissingEmail(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Jane"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandler_CheckAdmin(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.users["admin@x.com"] = &User{ID: uuid.New(), Email: "admin@x.com", Role: RoleAdmin}

	cases := []struct {
		email string
		want  bool
	}{
		{"admin@x.com", true},
		{"ghost@x.com", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("email")
		c.SetParamValues(tc.email)

		if err := h.CheckAdmin(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result map[string]bool
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if result["isAdmin"] != tc.want {
			t.Errorf("isAdmin for %s = %v, want %v", tc.email, result["isAdmin"], tc.want)
		}
	}
}

func TestHandler_GrantAdmin(t *testing.T) {
	h, repo, e := newTestHandler()
	u := &User{ID: uuid.New(), Email: "jane@x.com"}
	repo.users[u.Email] = u

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(u.ID.String())

	if err := h.GrantAdmin(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !u.IsAdmin() {
		t.Error("expected user promoted to admin")
	}
}

func TestHandler_IssueToken_KnownUser(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.users["jane@x.com"] = &User{ID: uuid.New(), Email: "jane@x.com"}

	req := httptest.NewRequest(http.MethodGet, "/jwt?email=jane@x.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.IssueToken(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result["accessToken"] == "" {
		t.Error("expected a non-empty accessToken")
	}
}

func TestHandler_IssueToken_UnknownUser(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/jwt?email=ghost@x.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.IssueToken(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	token, ok := result["accessToken"]
	if !ok || token != "" {
		t.Errorf("expected explicit empty accessToken, got %v", result)
	}
}
