package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUsername extracts the username injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty username
// proves the middleware ran. The token's role and province claims are display
// hints only; services reload the account for anything that matters.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
