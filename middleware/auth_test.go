package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
)

var testSecret = []byte("test-secret")

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	email, err := GetUserEmailFromContext(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	role, _ := GetUserRoleFromContext(r.Context())
	w.Write([]byte(email + "|" + string(role)))
}

func TestAuthenticate(t *testing.T) {
	player := &models.User{Email: "ana@example.com", Name: "Ana", Role: models.RolePlayer}
	valid, err := NewToken(testSecret, player, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}
	expired, _ := NewToken(testSecret, player, time.Hour, time.Now().Add(-2*time.Hour))
	forged, _ := NewToken([]byte("other"), player, time.Hour, time.Now())

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, "ana@example.com|player"},
		{"lower-case scheme", "bearer " + valid, http.StatusOK, "ana@example.com|player"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized, ""},
	}

	handler := Authenticate(testSecret)(http.HandlerFunc(echoIdentity))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := RequireAdmin(ok)

	tests := []struct {
		name   string
		role   models.UserRole
		status int
	}{
		{"admin", models.RoleAdmin, http.StatusNoContent},
		{"player", models.RolePlayer, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/admin", nil)
			req = req.WithContext(WithClaims(req.Context(), "x@example.com", tt.role))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no claims status = %d, want 401", rec.Code)
	}
}

func TestWriteErrorProducesValidJSON(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"plain", "invalid or expired token", "invalid or expired token"},
		{"quoted claim", `invalid role value in claim: "root"`, `invalid role value in claim: "root"`},
		{"control character", "invalid role value in claim: \x7f\x00", "invalid role value in claim: \x7f\x00"},
		{"accented", "token inválido", "token inválido"},
		{"invalid utf-8", "bad \xff byte", "bad \ufffd byte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, http.StatusUnauthorized, tt.message)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body %q is not JSON: %v", rec.Body.String(), err)
			}
			if body["error"] != tt.want {
				t.Errorf("error = %q, want %q", body["error"], tt.want)
			}
		})
	}
}
