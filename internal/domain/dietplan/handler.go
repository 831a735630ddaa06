package dietplan

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
	g := api.Group("/diet-plan")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var p DietPlan
	if err := respond.Decode(c, &p); err != nil {
		return respond.Error(c, err)
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusCreated, "diet plan created", p)
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
	return respond.OK(c, http.StatusOK, "diet plan retrieved", p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := Filter{Status: c.QueryParam("status")}
	if raw := c.QueryParam("patient_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			return respond.Error(c, apperr.MalformedID("patient_id"))
		}
		f.PatientID = pid
	}
	plans, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return respond.Error(c, err)
	}
	if plans == nil {
		plans = []*DietPlan{}
	}
	return respond.List(c, "diet plans retrieved", plans, pg, total)
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
	return respond.OK(c, http.StatusOK, "diet plan updated", p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.MalformedID("id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "diet plan deleted", nil)
}
