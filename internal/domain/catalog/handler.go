package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/appointmentOptions", h.ListOptions)
	e.GET("/v2/appointmentOptions", h.ListOptionsV2)
	e.GET("/specialty", h.ListSpecialties)
}

func (h *Handler) ListOptions(c echo.Context) error {
	date := c.QueryParam("date")
	opts, err := h.svc.Options(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load appointment options")
	}
	if opts == nil {
		opts = []*AppointmentOption{}
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) ListOptionsV2(c echo.Context) error {
	date := c.QueryParam("date")
	opts, err := h.svc.OptionsV2(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load appointment options")
	}
	if opts == nil {
		opts = []*AppointmentOption{}
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) ListSpecialties(c echo.Context) error {
	names, err := h.svc.Specialties(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load specialties")
	}
	if names == nil {
		names = []*Specialty{}
	}
	return c.JSON(http.StatusOK, names)
}
