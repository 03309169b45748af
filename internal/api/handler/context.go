package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chooy/admin-console/internal/api/middleware"
	"github.com/chooy/admin-console/internal/core/domain"
)

// actor returns the authenticated operator for the current request. Handlers
// behind the session gate can rely on it; a miss means the route was wired
// without the gate, which is a programming error surfaced as a 500.
func actor(c echo.Context) (domain.SessionUser, error) {
	session := middleware.SessionFromEcho(c)
	if session == nil || session.User == nil {
		return domain.SessionUser{}, echo.NewHTTPError(http.StatusInternalServerError, "session missing from request context")
	}
	return *session.User, nil
}
