package mealprep

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/pkg/pagination"
	"github.com/mealtrack/mealtrack/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/meal-preparation")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/status-history", h.StatusHistory)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var p MealPreparation
	if err := respond.Decode(c, &p); err != nil {
		return respond.Error(c, err)
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusCreated, "meal preparation created", p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.MalformedID("id"))
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "meal preparation retrieved", p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := Filter{Status: c.QueryParam("status")}
	if raw := c.QueryParam("diet_plan_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respond.Error(c, apperr.MalformedID("diet_plan_id"))
		}
		f.DietPlanID = id
	}
	if raw := c.QueryParam("staff_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respond.Error(c, apperr.MalformedID("staff_id"))
		}
		f.StaffID = id
	}
	preps, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return respond.Error(c, err)
	}
	if preps == nil {
		preps = []*MealPreparation{}
	}
	return respond.List(c, "meal preparations retrieved", preps, pg, total)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.MalformedID("id"))
	}
	var in UpdateInput
	if err := respond.Decode(c, &in); err != nil {
		return respond.Error(c, err)
	}
	p, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "meal preparation updated", p)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.MalformedID("id"))
	}
	var in StatusInput
	if err := respond.Decode(c, &in); err != nil {
		return respond.Error(c, err)
	}
	p, err := h.svc.UpdateStatus(c.Request().Context(), id, in)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "meal preparation status updated", p)
}

func (h *Handler) StatusHistory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.MalformedID("id"))
	}
	history, err := h.svc.StatusHistory(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	if history == nil {
		history = []*StatusHistory{}
	}
	return respond.OK(c, http.StatusOK, "status history retrieved", history)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.MalformedID("id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "meal preparation deleted", nil)
}
