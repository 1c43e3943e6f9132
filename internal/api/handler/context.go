package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a request that
// reaches a guarded handler without a user id means the middleware did not
// run, and must not fall through to the engine.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(int64)
	if userID <= 0 {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	rawRoles, _ := c.Get("roles").([]string)
	roles := make([]domain.Role, 0, len(rawRoles))
	for _, r := range rawRoles {
		roles = append(roles, domain.Role(r))
	}

	return domain.Actor{ID: userID, Roles: roles}, nil
}
