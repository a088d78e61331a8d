package doctors

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes attaches the doctor-management endpoints. All of them
// require an authenticated admin.
func (h *Handler) RegisterRoutes(e *echo.Echo, requireUser, requireAdmin echo.MiddlewareFunc) {
	e.GET("/manageDoctors", h.List, requireUser, requireAdmin)
	e.POST("/addDoctors", h.Add, requireUser, requireAdmin)
	e.DELETE("/deleteDoctor/:id", h.Delete, requireUser, requireAdmin)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load doctors")
	}
	if items == nil {
		items = []*Doctor{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Add(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Add(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   d.ID,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	deleted, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete doctor")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"deletedCount": deleted,
	})
}
