package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamops/teamops-api/internal/api/middleware"
	"github.com/teamops/teamops-api/internal/core/domain"
)

// ctxIdentity extracts the identity resolved by the auth middleware and
// fast-fails before any service call. Handlers behind RequireAuth should
// never see an anonymous identity; if they do, the route is miswired and the
// request is rejected rather than served without an owner.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity := middleware.IdentityFrom(c)
	if !identity.Authenticated() {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
