package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealtrack/mealtrack/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, "dashboard stats retrieved", stats)
}
