package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// RequireRoles enforces a role floor on the route. An actor passes when its
// role meets the lowest of the required roles, or when the route's :username
// parameter names the actor itself, so users always reach their own resources
// regardless of rank.
func RequireRoles(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			actor, _ := c.Get("username").(string)
			if role == "" || actor == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			owner := c.Param("username")
			if !domain.HasAccess(domain.Role(role), required, owner, actor) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
