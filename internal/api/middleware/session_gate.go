package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chooy/admin-console/internal/core/domain"
)

// SessionCookie carries the console token for browser navigations that
// cannot set an Authorization header.
const SessionCookie = "console_session"

const sessionContextKey = "console.session"

// SessionResolver maps a console bearer token to its stored session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// SessionGate guards protected routes. Per navigation it lands in one of
// three states:
//   - the store could not be consulted → 503, no redirect, no content
//   - no valid session → 302 to the login entry point, original location
//     recorded in the "from" parameter
//   - session resolved → identity attached to the request context
//
// Role checks are a separate, later concern (RequireRole).
func SessionGate(resolver SessionResolver, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return redirectToLogin(c, loginPath)
			}

			session, err := resolver.Resolve(c.Request().Context(), token)
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				return redirectToLogin(c, loginPath)
			case err != nil:
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session state unavailable")
			}

			c.Set(sessionContextKey, session)
			ctx := domain.SessionToContext(c.Request().Context(), session)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireRole renders a terminal access-denied state when the session's role
// set contains none of the accepted roles. No redirect: the visitor holds a
// valid session and must navigate away on their own.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return RequireAnyRole(role)
}

// RequireAnyRole is RequireRole over a set: any one of the roles grants
// access.
func RequireAnyRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFromEcho(c)
			if session == nil || session.User == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}
			for _, role := range roles {
				if session.User.Roles.Has(role) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{
				"error":  "access denied",
				"detail": "your account does not hold a role permitted on this page",
			})
		}
	}
}

// SessionFromEcho returns the session the gate attached, or nil on
// unguarded routes.
func SessionFromEcho(c echo.Context) *domain.Session {
	session, _ := c.Get(sessionContextKey).(*domain.Session)
	return session
}

// bearerToken extracts the console token from the Authorization header,
// falling back to the session cookie.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func redirectToLogin(c echo.Context, loginPath string) error {
	from := c.Request().URL.RequestURI()
	return c.Redirect(http.StatusFound, loginPath+"?from="+url.QueryEscape(from))
}
