package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/festhub/festival-api/internal/pkg/jwt"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	jwtSvc := jwt.NewService("secret", time.Hour)
	svc, err := NewService(jwtSvc, "letmein", "admin-secret", "")
	if err != nil {
		t.Fatal(err)
	}
	return NewHandler(svc)
}

func postLogin(t *testing.T, h http.Handler, path, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesToken(t *testing.T) {
	h := testHandler(t).Routes()

	w := postLogin(t, h, "/", "letmein")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var envelope struct {
		Data LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Data.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if envelope.Data.Role != jwt.RoleParticipant {
		t.Fatalf("role = %q", envelope.Data.Role)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h := testHandler(t).Routes()

	w := postLogin(t, h, "/", "wrong")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminLoginUsesAdminPassword(t *testing.T) {
	h := testHandler(t).Routes()

	if w := postLogin(t, h, "/admin", "admin-secret"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	// The participant password must not open an admin session.
	if w := postLogin(t, h, "/admin", "letmein"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestArtistLoginDisabledWithoutPassword(t *testing.T) {
	h := testHandler(t).Routes()

	if w := postLogin(t, h, "/artist", "anything"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginRejectsMissingPassword(t *testing.T) {
	h := testHandler(t).Routes()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestServiceLoginUnknownRole(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Hour)
	svc, err := NewService(jwtSvc, "letmein", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login("stagehand", "letmein"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestIssuedTokenCarriesRole(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Hour)
	svc, err := NewService(jwtSvc, "letmein", "", "")
	if err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Login(jwt.RoleParticipant, "letmein")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := jwtSvc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Role != jwt.RoleParticipant {
		t.Fatalf("role = %q", claims.Role)
	}

	// Every login gets a fresh session.
	resp2, err := svc.Login(jwt.RoleParticipant, "letmein")
	if err != nil {
		t.Fatal(err)
	}
	claims2, err := jwtSvc.ValidateAccessToken(resp2.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.SessionID == claims2.SessionID {
		t.Fatal("two logins shared a session id")
	}
}
