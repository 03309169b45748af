package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/api/middleware"
	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

type stubAuthService struct {
	out       *ports.LoginOutput
	loginErr  error
	loggedOut []string
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.LoginOutput, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.out, nil
}

func (s *stubAuthService) Resolve(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func newEchoContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{out: &ports.LoginOutput{
		Token:     "console-token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      domain.SessionUser{UserID: "u1", Roles: domain.RoleSet{domain.RoleAdmin}},
	}}
	h := NewAuthHandler(svc, zerolog.Nop())

	body := `{"email":"alice@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newEchoContext(t, req)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookie {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("session cookie not set")
	}
	if found.Value != "console-token" || !found.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", found)
	}
	if !strings.Contains(rec.Body.String(), `"token":"console-token"`) {
		t.Fatalf("token missing from body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_RejectsInvalidBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, zerolog.Nop())

	cases := []string{
		`{"email":"","password":"secret"}`,
		`{"email":"not-an-email","password":"secret"}`,
		`{"email":"alice@example.com"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c, _ := newEchoContext(t, req)

		err := h.Login(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "console-token"})
	c, rec := newEchoContext(t, req)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "console-token" {
		t.Fatalf("logout not forwarded: %v", svc.loggedOut)
	}

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			cleared = ck
		}
	}
	if cleared == nil || cleared.MaxAge != -1 {
		t.Fatalf("session cookie not cleared: %+v", cleared)
	}
}
