package identity

import (
	"errors"
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

func (h *Handler) RegisterRoutes(e *echo.Echo, requireUser, requireAdmin echo.MiddlewareFunc) {
	e.GET("/users", h.List)
	e.POST("/users", h.Register)
	e.GET("/users/admin/:email", h.CheckAdmin)
	e.PUT("/users/admin/:id", h.GrantAdmin, requireUser, requireAdmin)
	e.GET("/jwt", h.IssueToken)
}

func (h *Handler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load users")
	}
	if users == nil {
		users = []*User{}
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) Register(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if u.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	if err := h.svc.Register(c.Request().Context(), &u); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save user")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   u.ID,
	})
}

// CheckAdmin reports whether the user behind the email holds the admin
// role. Absent users and ordinary patients both read as false.
func (h *Handler) CheckAdmin(c echo.Context) error {
	isAdmin, err := h.svc.IsAdmin(c.Request().Context(), c.Param("email"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check role")
	}
	return c.JSON(http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}

func (h *Handler) GrantAdmin(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	modified, err := h.svc.GrantAdmin(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update role")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"acknowledged":  true,
		"modifiedCount": modified,
	})
}

// IssueToken returns an access token for a known email. Unknown emails
// get a 403 with an explicitly empty token rather than an error body.
func (h *Handler) IssueToken(c echo.Context) error {
	token, err := h.svc.IssueToken(c.Request().Context(), c.QueryParam("email"))
	if errors.Is(err, ErrUnknownUser) {
		return c.JSON(http.StatusForbidden, map[string]string{"accessToken": ""})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(http.StatusOK, map[string]string{"accessToken": token})
}
