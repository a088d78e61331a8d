package booking

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/docport/docport/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, requireUser echo.MiddlewareFunc) {
	e.POST("/bookings", h.Create)
	e.GET("/bookings", h.ListByEmail, requireUser)
	e.GET("/bookings/:id", h.Get)
}

func (h *Handler) Create(c echo.Context) error {
	var b Booking
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.svc.Create(c.Request().Context(), &b)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// ListByEmail returns the caller's bookings. The email query parameter
// must match the token's email claim; anything else is a 403.
func (h *Handler) ListByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email != auth.EmailFromContext(c.Request().Context()) {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
	}

	items, err := h.svc.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load bookings")
	}
	if items == nil {
		items = []*Booking{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	return c.JSON(http.StatusOK, b)
}
