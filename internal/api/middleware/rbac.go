package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRoles enforces role-based access control on top of RequireAuth
// semantics: anonymous requests get 401, authenticated requests whose role
// is not in the allowed set get 403.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if !identity.Authenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[identity.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
