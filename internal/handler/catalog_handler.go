package handler

import (
	"net/http"

	"github.com/Eursukkul/airline-ops/internal/dto"
	"github.com/Eursukkul/airline-ops/internal/middleware"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	api := e.Group("/api/v1")
	api.GET("/airports", h.ListAirports, g.Admin)
	api.POST("/airports", h.CreateAirport, g.Admin)
	api.GET("/aircraft", h.ListAircraft, g.Admin)
	api.POST("/aircraft", h.CreateAircraft, g.Admin)
	api.GET("/personnel", h.ListPersonnel, g.Admin)
	api.POST("/personnel", h.CreatePersonnel, g.Admin)
}

func (h *CatalogHandler) ListAirports(c echo.Context) error {
	airports, err := h.svc.ListAirports(c.Request().Context())
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusOK, airports)
}

func (h *CatalogHandler) CreateAirport(c echo.Context) error {
	var req dto.CreateAirportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	airport := req.ToModel()
	if err := h.svc.CreateAirport(c.Request().Context(), airport); err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, airport)
}

func (h *CatalogHandler) ListAircraft(c echo.Context) error {
	aircraft, err := h.svc.ListAircraft(c.Request().Context())
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusOK, aircraft)
}

func (h *CatalogHandler) CreateAircraft(c echo.Context) error {
	var req dto.CreateAircraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	aircraft := req.ToModel()
	if err := h.svc.CreateAircraft(c.Request().Context(), aircraft); err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, aircraft)
}

func (h *CatalogHandler) ListPersonnel(c echo.Context) error {
	var role *models.PersonnelRole
	if r := c.QueryParam("role"); r != "" {
		pr := models.PersonnelRole(r)
		role = &pr
	}

	staff, err := h.svc.ListPersonnel(c.Request().Context(), role)
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusOK, staff)
}

func (h *CatalogHandler) CreatePersonnel(c echo.Context) error {
	var req dto.CreatePersonnelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p := req.ToModel()
	if err := h.svc.CreatePersonnel(c.Request().Context(), p); err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, p)
}
