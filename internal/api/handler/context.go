package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A missing
// username proves the middleware did not run (or the token carried no
// identity) — reject with 401 before any service call.
func ctxIdentity(c echo.Context) (username string, role string, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return username, role, nil
}

// paramUint parses a numeric path parameter, rejecting non-numeric values
// with 400 before they reach the service layer.
func paramUint(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(n), nil
}

// pageFromQuery reads the page/limit query parameters. Absent or malformed
// values fall back to the defaults applied by Page.Normalize.
func pageFromQuery(c echo.Context) ports.Page {
	var page ports.Page
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		page.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		page.Limit = n
	}
	return page.Normalize()
}

// pagedResponse is the envelope for every paginated collection.
type pagedResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
}
