package handler

import (
	"net/http"

	"github.com/Eursukkul/airline-ops/internal/dto"
	"github.com/Eursukkul/airline-ops/internal/middleware"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/labstack/echo/v4"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/passengers", h.Register)
	api.POST("/sessions", h.Login)
}

func (h *SessionHandler) Register(c echo.Context) error {
	var req dto.RegisterPassengerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := h.svc.Register(c.Request().Context(), req.ToModel())
	if err != nil {
		return middleware.HTTPError(err)
	}

	middleware.SetSessionCookie(c, session.Token, session.ExpiresAt)
	return c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

func (h *SessionHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.PassportNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and passport_number are required")
	}

	session, err := h.svc.Login(c.Request().Context(), req.Email, req.PassportNumber)
	if err != nil {
		return middleware.HTTPError(err)
	}

	middleware.SetSessionCookie(c, session.Token, session.ExpiresAt)
	return c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
