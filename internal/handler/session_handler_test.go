package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/airline-ops/internal/dto"
	"github.com/Eursukkul/airline-ops/internal/middleware"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func sessionFor(p *models.Passenger) *service.Session {
	return &service.Session{Passenger: p, Token: "signed.jwt.token", ExpiresAt: time.Now().Add(time.Hour)}
}

func TestRegister_SetsCookie(t *testing.T) {
	svc := &mockSessionService{
		registerFn: func(ctx context.Context, p *models.Passenger) (*service.Session, error) {
			assert.Equal(t, "deniz@example.com", p.Email)
			p.ID = 4
			return sessionFor(p), nil
		},
	}
	h := NewSessionHandler(svc)
	e := newEcho(t)
	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/api/v1/passengers",
		`{"first_name":"Deniz","last_name":"Kaya","email":"deniz@example.com","passport_number":"U1234567"}`)

	require.NoError(t, h.Register(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), middleware.SessionCookie+"=signed.jwt.token")

	var body dto.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint(4), body.PassengerID)
	assert.Equal(t, "signed.jwt.token", body.Token)
}

func TestRegister_Duplicate(t *testing.T) {
	svc := &mockSessionService{
		registerFn: func(ctx context.Context, p *models.Passenger) (*service.Session, error) {
			return nil, service.ErrDuplicate
		},
	}
	h := NewSessionHandler(svc)
	e := newEcho(t)
	req := jsonRequest(http.MethodPost, "/api/v1/passengers", `{"email":"deniz@example.com"}`)

	err := h.Register(e.NewContext(req, httptest.NewRecorder()))

	assert.Equal(t, http.StatusConflict, httpErrorCode(t, err))
}

func TestLogin(t *testing.T) {
	svc := &mockSessionService{
		loginFn: func(ctx context.Context, email, passport string) (*service.Session, error) {
			if passport != "U1234567" {
				return nil, service.ErrInvalidLogin
			}
			return sessionFor(&models.Passenger{ID: 1, FirstName: "Deniz", LastName: "Kaya"}), nil
		},
	}
	h := NewSessionHandler(svc)
	e := newEcho(t)

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/api/v1/sessions", `{"email":"deniz@example.com","passport_number":"U1234567"}`)
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	req = jsonRequest(http.MethodPost, "/api/v1/sessions", `{"email":"deniz@example.com","passport_number":"X0000000"}`)
	err := h.Login(e.NewContext(req, httptest.NewRecorder()))
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))

	req = jsonRequest(http.MethodPost, "/api/v1/sessions", `{"email":"deniz@example.com"}`)
	err = h.Login(e.NewContext(req, httptest.NewRecorder()))
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}
