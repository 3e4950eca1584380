package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// sessionIDHeader carries the opaque session key issued at login.
const sessionIDHeader = "X-Session-ID"

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both username and role
// must be present, and the role must be one of the two known variants.
func ctxIdentity(c echo.Context) (username string, role domain.Role, err error) {
	username, _ = c.Get("username").(string)
	roleStr, _ := c.Get("role").(string)
	role = domain.Role(roleStr)

	if username == "" || !role.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, role, nil
}
