package middleware

import (
	"net/http"
	"time"

	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookie     = "session"
	sessionContextKey = "session"
)

// TokenParser validates a session token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*service.PassengerClaims, error)
}

// Session requires a passenger token from the Authorization header or the
// session cookie and stores it on the context once parser accepts it.
func Session(parser TokenParser) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ,cookie:" + SessionCookie,
		ContextKey:  sessionContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			claims, err := parser.ParseToken(auth)
			if err != nil {
				return nil, err
			}
			return &jwt.Token{Raw: auth, Method: jwt.SigningMethodHS256, Claims: claims, Valid: true}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return &echo.HTTPError{
				Code:     http.StatusUnauthorized,
				Message:  service.ErrUnauthorizedSession.Message,
				Internal: err,
			}
		},
	})
}

// PassengerID returns the passenger of the current session.
func PassengerID(c echo.Context) (uint, bool) {
	token, ok := c.Get(sessionContextKey).(*jwt.Token)
	if !ok || token == nil {
		return 0, false
	}
	claims, ok := token.Claims.(*service.PassengerClaims)
	if !ok || claims.PassengerID == 0 {
		return 0, false
	}
	return claims.PassengerID, true
}

// SetSessionCookie hands the token to browsers so form posts carry the session.
func SetSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
