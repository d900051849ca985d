package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Eursukkul/airline-ops/internal/apperr"
	"github.com/Eursukkul/airline-ops/internal/dto"
	"github.com/Eursukkul/airline-ops/internal/middleware"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/Eursukkul/airline-ops/internal/view"
	"github.com/labstack/echo/v4"
)

type FlightHandler struct {
	search        service.SearchService
	catalog       service.CatalogService
	maxPassengers int
}

func NewFlightHandler(search service.SearchService, catalog service.CatalogService, maxPassengers int) *FlightHandler {
	return &FlightHandler{search: search, catalog: catalog, maxPassengers: maxPassengers}
}

func (h *FlightHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/", h.Index)
	e.GET("/flights", h.SearchFlights)

	api := e.Group("/api/v1/flights")
	api.GET("", h.SearchFlights)
	api.GET("/:id", h.GetFlight)
	api.POST("", h.CreateFlight, g.Admin)
	api.PATCH("/:id/status", h.UpdateStatus, g.Admin)
	api.PUT("/:id/crew", h.AssignCrew, g.Admin)
}

func (h *FlightHandler) Index(c echo.Context) error {
	airports, err := h.catalog.ListAirports(c.Request().Context())
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.Render(http.StatusOK, "index.html", view.IndexPage{Airports: airports})
}

func searchParams(c echo.Context) service.SearchParams {
	return service.SearchParams{
		Origin:        c.QueryParam("origin"),
		Destination:   c.QueryParam("destination"),
		DepartureDate: c.QueryParam("departure_date"),
		MaxPrice:      c.QueryParam("price"),
		Sort:          c.QueryParam("sort"),
		Passengers:    c.QueryParam("passengers"),
	}
}

func (h *FlightHandler) SearchFlights(c echo.Context) error {
	ctx := c.Request().Context()
	params := searchParams(c)

	var results []service.FlightResult
	query, err := service.ParseSearchParams(params, h.maxPassengers)
	if err == nil {
		results, err = h.search.Search(ctx, query)
	}

	if middleware.WantsJSON(c) {
		if err != nil {
			return middleware.HTTPError(err)
		}
		return c.JSON(http.StatusOK, dto.ToFlightSearchResponse(results))
	}

	if err != nil && !errors.Is(err, apperr.ErrValidation) {
		return middleware.HTTPError(err)
	}
	airports, aerr := h.catalog.ListAirports(ctx)
	if aerr != nil {
		return middleware.HTTPError(aerr)
	}

	page := view.FlightsPage{Airports: airports, Params: params, Passengers: query.Passengers, Results: results}
	status := http.StatusOK
	if err != nil {
		page.Error = fmt.Sprint(middleware.HTTPError(err).Message)
		page.Passengers = 1
		status = http.StatusBadRequest
	}
	return c.Render(status, "flights.html", page)
}

func (h *FlightHandler) GetFlight(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	flight, err := h.catalog.GetFlight(c.Request().Context(), id)
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) CreateFlight(c echo.Context) error {
	var req dto.CreateFlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	flight, err := h.catalog.CreateFlight(c.Request().Context(), req.ToInput())
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	flight, err := h.catalog.UpdateFlightStatus(c.Request().Context(), id, models.FlightStatus(req.Status))
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) AssignCrew(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignCrewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	flight, err := h.catalog.AssignCrew(c.Request().Context(), id, req.PersonnelIDs)
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusOK, flight)
}
