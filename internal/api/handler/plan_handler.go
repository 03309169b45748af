package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/ports"
)

// PlanHandler serves subscription plan CRUD.
type PlanHandler struct {
	plans ports.PlanService
	log   zerolog.Logger
}

func NewPlanHandler(plans ports.PlanService, log zerolog.Logger) *PlanHandler {
	return &PlanHandler{plans: plans, log: log}
}

// ListPlans lists plans with their computed effective prices.
//
// @Summary      List subscription plans
// @Tags         subscriptions
// @Produce      json
// @Success      200  {array}  ports.PlanView
// @Router       /admin/subscriptions [get]
func (h *PlanHandler) ListPlans(c echo.Context) error {
	plans, err := h.plans.ListPlans(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// GetPlan fetches one plan.
//
// @Summary      Get subscription plan
// @Tags         subscriptions
// @Produce      json
// @Param        id  path  string  true  "Plan id"
// @Success      200  {object}  ports.PlanView
// @Router       /admin/subscriptions/{id} [get]
func (h *PlanHandler) GetPlan(c echo.Context) error {
	plan, err := h.plans.GetPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// CreatePlan creates a plan.
//
// @Summary      Create subscription plan
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body  planRequest  true  "Plan"
// @Success      201  {object}  ports.PlanView
// @Router       /admin/subscriptions [post]
func (h *PlanHandler) CreatePlan(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	input, err := bindPlan(c)
	if err != nil {
		return err
	}
	plan, err := h.plans.CreatePlan(c.Request().Context(), operator, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

// UpdatePlan rewrites a plan.
//
// @Summary      Update subscription plan
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id    path  string       true  "Plan id"
// @Param        body  body  planRequest  true  "Plan"
// @Success      200  {object}  ports.PlanView
// @Router       /admin/subscriptions/{id} [put]
func (h *PlanHandler) UpdatePlan(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	input, err := bindPlan(c)
	if err != nil {
		return err
	}
	plan, err := h.plans.UpdatePlan(c.Request().Context(), operator, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan.
//
// @Summary      Delete subscription plan
// @Tags         subscriptions
// @Param        id  path  string  true  "Plan id"
// @Success      204
// @Router       /admin/subscriptions/{id} [delete]
func (h *PlanHandler) DeletePlan(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.plans.DeletePlan(c.Request().Context(), operator, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindPlan(c echo.Context) (ports.PlanInput, error) {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return ports.PlanInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ports.PlanInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.PlanInput{
		Name:          req.Name,
		Type:          req.Type,
		Status:        req.Status,
		OriginalPrice: req.OriginalPrice,
		Discount:      req.Discount,
	}, nil
}
