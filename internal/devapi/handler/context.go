package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sachcu/marketplace-client/internal/devapi/middleware"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

// ctxClaims extracts the identity injected by the Auth middleware. A zero
// user ID means the middleware did not run.
func ctxClaims(c echo.Context) (userID int, role string, err error) {
	userID, _ = c.Get(middleware.KeyUserID).(int)
	role, _ = c.Get(middleware.KeyRole).(string)
	if userID == 0 || role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// viewer describes the caller on routes where authentication is optional.
func viewer(c echo.Context) store.Viewer {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return store.Viewer{}
	}
	if role == middleware.RoleAdmin {
		return store.Viewer{Admin: true}
	}
	return store.Viewer{UserID: userID}
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}

// bind decodes and validates the request body into dst.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(dst)
}

// pathParam returns the unescaped value of a string path parameter.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
