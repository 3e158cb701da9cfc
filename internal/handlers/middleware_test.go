package handlers

import (
	"errors"
	"net/http"
	"testing"

	"waterbuddy/internal/service"
)

func TestMiddleware_MissingHeader(t *testing.T) {
	router := newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: "u1"},
		Intake:        &mockIntake{},
	})

	w := performRequest(router, http.MethodGet, "/api/v1/intake/today", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestMiddleware_BadHeaderFormat(t *testing.T) {
	router := newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: "u1"},
		Intake:        &mockIntake{},
	})

	for _, header := range []string{"tok", "Basic tok", "Bearer"} {
		h := http.Header{}
		h.Set("Authorization", header)
		w := performRequest(router, http.MethodGet, "/api/v1/intake/today", nil, h)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuth{parseErr: errors.New("signature mismatch")}
	router := newTestRouter(&service.Service{
		Authorization: auth,
		Intake:        &mockIntake{},
	})

	w := performRequest(router, http.MethodGet, "/api/v1/intake/today", nil, authHeader("bad-token"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if auth.lastParseToken != "bad-token" {
		t.Fatalf("parsed token = %q, want bad-token", auth.lastParseToken)
	}
}

func TestMiddleware_ValidTokenPassesUserID(t *testing.T) {
	intake := &mockIntake{todayML: 500}
	router := newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: "uid-7"},
		Intake:        intake,
	})

	w := performRequest(router, http.MethodGet, "/api/v1/intake/today", nil, authHeader("good-token"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	if intake.lastUID != "uid-7" {
		t.Fatalf("handler saw uid %q, want uid-7", intake.lastUID)
	}
}

func TestHealth_NoAuthRequired(t *testing.T) {
	router := newTestRouter(&service.Service{})

	w := performRequest(router, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decodeBody(t, w)["status"]; got != "ok" {
		t.Fatalf("status field = %v, want ok", got)
	}
}
