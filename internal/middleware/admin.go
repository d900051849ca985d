package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

const HeaderAdminKey = "X-Admin-Key"

// AdminKey guards operator endpoints with a shared key in the X-Admin-Key header.
func AdminKey(key string) echo.MiddlewareFunc {
	return echoMw.KeyAuthWithConfig(echoMw.KeyAuthConfig{
		KeyLookup: "header:" + HeaderAdminKey,
		Validator: func(got string, c echo.Context) (bool, error) {
			return key != "" && subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing admin key")
		},
	})
}
