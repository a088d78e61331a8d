package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminChecker reports whether the user behind an email currently holds
// the admin role. Checked live on every request so a revoked admin loses
// access immediately, not at token expiry.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAdmin gates a route group to admin users. Must run after
// RequireUser so the caller's email is on the context.
func RequireAdmin(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			email := EmailFromContext(ctx)
			if email == "" {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			isAdmin, err := checker.IsAdmin(ctx, email)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to verify role")
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			return next(c)
		}
	}
}
