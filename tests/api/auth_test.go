package apitest

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuth_RejectsMissingKey(t *testing.T) {
	u := newUpstream(t)
	e, _ := newConsole(t, u)

	req := httptest.NewRequest(http.MethodGet, "/api/resources/languages", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want auth failure", rec.Code)
	}
	if u.resources != 0 {
		t.Error("unauthenticated request must not reach the upstream")
	}
}

func TestAuth_RejectsWrongKey(t *testing.T) {
	u := newUpstream(t)
	e, _ := newConsole(t, u)

	req := httptest.NewRequest(http.MethodGet, "/api/resources/languages", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_AcceptsKey(t *testing.T) {
	u := newUpstream(t)
	e, _ := newConsole(t, u)

	rec := do(e, http.MethodGet, "/api/resources/languages", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with the configured key", rec.Code)
	}
}
