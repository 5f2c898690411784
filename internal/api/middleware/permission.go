package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// PermissionResolver looks up a user's effective permission set: the union of
// permission strings across all roles assigned to them.
type PermissionResolver interface {
	EffectivePermissions(ctx context.Context, username string) ([]string, error)
}

// Permission enforces permission-based access control. The caller's effective
// permission set must contain perm. Role names grant nothing by themselves;
// only the permission strings matter.
func Permission(resolver PermissionResolver, perm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get("username").(string)
			if username == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			perms, err := resolver.EffectivePermissions(c.Request().Context(), username)
			if err != nil {
				return err
			}
			if !domain.HasPermission(perms, perm) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
