package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// RootHandler routes the console's entry points. The root path forwards the
// visitor to the highest dashboard their role set allows.
type RootHandler struct {
	auth ports.AuthService
}

func NewRootHandler(auth ports.AuthService) *RootHandler {
	return &RootHandler{auth: auth}
}

// Home redirects by role: Admin to the user dashboard, any other
// authenticated operator to the book workshop, everyone else to login.
func (h *RootHandler) Home(c echo.Context) error {
	token := requestToken(c)
	if token == "" {
		return c.Redirect(http.StatusFound, "/login")
	}
	session, err := h.auth.Resolve(c.Request().Context(), token)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}
	if session.User.Roles.Has(domain.RoleAdmin) {
		return c.Redirect(http.StatusFound, "/admin/users")
	}
	return c.Redirect(http.StatusFound, "/staff/books")
}

// LoginEntry is the unauthenticated landing point the gate redirects to. The
// console is an API surface, so it answers with instructions rather than a
// rendered page; the "from" parameter is echoed back for the client to resume.
func (h *RootHandler) LoginEntry(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "authenticate via POST /auth/login",
		"from":    c.QueryParam("from"),
	})
}
