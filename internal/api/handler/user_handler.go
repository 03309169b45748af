package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// UserHandler serves the member and staff dashboards and the two account
// mutations.
type UserHandler struct {
	directory ports.DirectoryService
	log       zerolog.Logger
}

func NewUserHandler(directory ports.DirectoryService, log zerolog.Logger) *UserHandler {
	return &UserHandler{directory: directory, log: log}
}

// ListMembers lists accounts holding the User role.
//
// @Summary      List members
// @Tags         users
// @Produce      json
// @Param        search    query  string  false  "Name substring filter"
// @Param        sortBy    query  string  false  "Sort field"  Enums(isActive, isVerified, createdAt)
// @Param        order     query  string  false  "Sort order"  Enums(asc, desc)
// @Param        page      query  int     false  "Page number"
// @Param        pageSize  query  int     false  "Page size"
// @Success      200  {object}  ports.DirectoryPage
// @Router       /admin/users [get]
func (h *UserHandler) ListMembers(c echo.Context) error {
	q, err := bindDirectoryQuery(c)
	if err != nil {
		return err
	}
	page, err := h.directory.ListMembers(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// ListStaff lists accounts holding the Staff role.
//
// @Summary      List staff
// @Tags         users
// @Produce      json
// @Param        search    query  string  false  "Name substring filter"
// @Param        sortBy    query  string  false  "Sort field"  Enums(isActive, isVerified, createdAt)
// @Param        order     query  string  false  "Sort order"  Enums(asc, desc)
// @Param        page      query  int     false  "Page number"
// @Param        pageSize  query  int     false  "Page size"
// @Success      200  {object}  ports.DirectoryPage
// @Router       /admin/staff [get]
func (h *UserHandler) ListStaff(c echo.Context) error {
	q, err := bindDirectoryQuery(c)
	if err != nil {
		return err
	}
	page, err := h.directory.ListStaff(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateRole assigns a role to an account.
//
// @Summary      Update account role
// @Tags         users
// @Accept       json
// @Param        id    path  string             true  "User id"
// @Param        body  body  roleUpdateRequest  true  "New role"
// @Success      204
// @Router       /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	var req roleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.directory.ChangeRole(c.Request().Context(), operator, c.Param("id"), role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateActivation enables or disables an account.
//
// @Summary      Update account activation
// @Tags         users
// @Accept       json
// @Param        id    path  string             true  "User id"
// @Param        body  body  activationRequest  true  "Activation flag"
// @Success      204
// @Router       /admin/users/{id}/activation [put]
func (h *UserHandler) UpdateActivation(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	var req activationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.directory.SetActivation(c.Request().Context(), operator, c.Param("id"), *req.IsActive); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindDirectoryQuery(c echo.Context) (ports.DirectoryQuery, error) {
	var q directoryQuery
	if err := c.Bind(&q); err != nil {
		return ports.DirectoryQuery{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return ports.DirectoryQuery{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.DirectoryQuery{
		Search:    q.Search,
		SortField: q.SortBy,
		SortDesc:  q.Order == "desc",
		Page:      q.Page,
		PageSize:  q.PageSize,
	}, nil
}
