package mealdelivery

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
	g := api.Group("/meal-delivery")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id/status", h.UpdateStatus)
}

func (h *Handler) Create(c echo.Context) error {
	var d MealDelivery
	if err := respond.Decode(c, &d); err != nil {
		return respond.Error(c, err)
	}
	if err := h.svc.Create(c.Request().Context(), &d); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusCreated, "meal delivery created", d)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.MalformedID("id"))
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "meal delivery retrieved", d)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := Filter{Status: c.QueryParam("status")}
	if raw := c.QueryParam("delivery_person_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respond.Error(c, apperr.MalformedID("delivery_person_id"))
		}
		f.DeliveryPersonID = id
	}
	deliveries, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return respond.Error(c, err)
	}
	if deliveries == nil {
		deliveries = []*MealDelivery{}
	}
	return respond.List(c, "meal deliveries retrieved", deliveries, pg, total)
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
	d, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "meal delivery updated", d)
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
	d, err := h.svc.UpdateStatus(c.Request().Context(), id, in)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "meal delivery status updated", d)
}
