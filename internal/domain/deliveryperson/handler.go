package deliveryperson

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
	g := api.Group("/delivery-person")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var d DeliveryPerson
	if err := respond.Decode(c, &d); err != nil {
		return respond.Error(c, err)
	}
	if err := h.svc.Create(c.Request().Context(), &d); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusCreated, "delivery person created", d)
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
	return respond.OK(c, http.StatusOK, "delivery person retrieved", d)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	persons, total, err := h.svc.List(c.Request().Context(), c.QueryParam("search"), pg.Limit, pg.Offset())
	if err != nil {
		return respond.Error(c, err)
	}
	if persons == nil {
		persons = []*DeliveryPerson{}
	}
	return respond.List(c, "delivery persons retrieved", persons, pg, total)
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
	return respond.OK(c, http.StatusOK, "delivery person updated", d)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.MalformedID("id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "delivery person deleted", nil)
}
