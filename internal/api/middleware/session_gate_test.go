package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chooy/admin-console/internal/core/domain"
)

type stubResolver struct {
	session *domain.Session
	err     error
}

func (r *stubResolver) Resolve(context.Context, string) (*domain.Session, error) {
	return r.session, r.err
}

func adminSession() *domain.Session {
	return &domain.Session{
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(time.Hour),
		User: &domain.SessionUser{
			UserID: "u1",
			Name:   "Alice",
			Roles:  domain.RoleSet{domain.RoleAdmin},
		},
	}
}

func runGate(t *testing.T, resolver SessionResolver, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := SessionGate(resolver, "/login")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestSessionGate_NoTokenRedirectsWithFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/users?page=2", nil)
	rec, called := runGate(t, &stubResolver{}, req)

	if called {
		t.Fatalf("next must not run without a session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad redirect location: %v", err)
	}
	if loc.Path != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc.Path)
	}
	if got := loc.Query().Get("from"); got != "/admin/users?page=2" {
		t.Fatalf("original location not preserved, from=%q", got)
	}
}

func TestSessionGate_UnknownSessionRedirects(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec, called := runGate(t, &stubResolver{err: domain.ErrSessionNotFound}, req)

	if called {
		t.Fatalf("next must not run with an unknown session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

func TestSessionGate_StoreFailureIs503NotRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec, called := runGate(t, &stubResolver{err: errors.New("redis: connection refused")}, req)

	if called {
		t.Fatalf("next must not run when the store is down")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Fatalf("store failure must not redirect")
	}
}

func TestSessionGate_ValidSessionAttachesIdentity(t *testing.T) {
	session := adminSession()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionGate(&stubResolver{session: session}, "/login")(func(c echo.Context) error {
		got := SessionFromEcho(c)
		if got == nil || got.User.UserID != "u1" {
			t.Fatalf("session not attached to echo context")
		}
		if s, ok := domain.SessionFromContext(c.Request().Context()); !ok || s.AccessToken != "token" {
			t.Fatalf("session not attached to request context")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_MismatchIsTerminal403(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	session := adminSession()
	session.User.Roles = domain.RoleSet{domain.RoleStaff}
	c.Set(sessionContextKey, session)

	called := false
	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("next must not run on role mismatch")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Fatalf("role mismatch must not redirect")
	}
}

func TestRequireAnyRole_AdminPassesStaffGate(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/staff/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(sessionContextKey, adminSession())

	called := false
	handler := RequireAnyRole(domain.RoleStaff, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("admin must pass the staff gate")
	}
}
