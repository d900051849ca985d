package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Guards are the middlewares protecting route groups.
type Guards struct {
	Admin   echo.MiddlewareFunc
	Session echo.MiddlewareFunc
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
