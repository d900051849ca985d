package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Eursukkul/airline-ops/internal/dto"
	"github.com/Eursukkul/airline-ops/internal/middleware"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/Eursukkul/airline-ops/internal/view"
	"github.com/labstack/echo/v4"
)

type BaggageHandler struct {
	svc service.BaggageService
}

func NewBaggageHandler(svc service.BaggageService) *BaggageHandler {
	return &BaggageHandler{svc: svc}
}

func (h *BaggageHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/baggage", h.CheckInForm)
	e.POST("/baggage", h.CheckIn)
	e.GET("/baggage/track/:tag", h.Track)

	e.PATCH("/api/v1/baggage/:tag/status", h.UpdateStatus, g.Admin)
}

func (h *BaggageHandler) CheckInForm(c echo.Context) error {
	return c.Render(http.StatusOK, "baggage.html", view.BaggagePage{
		PNR:    strings.ToUpper(c.QueryParam("pnr")),
		Policy: h.svc.Policy(),
	})
}

// CheckIn accepts the form fields pnr (or ticketNumber) and weight. Browser
// submissions get their errors inline on the form.
func (h *BaggageHandler) CheckIn(c echo.Context) error {
	pnr := strings.TrimSpace(c.FormValue("pnr"))
	if pnr == "" {
		pnr = strings.TrimSpace(c.FormValue("ticketNumber"))
	}
	rawWeight := c.FormValue("weight")

	page := view.BaggagePage{PNR: strings.ToUpper(pnr), Weight: rawWeight, Policy: h.svc.Policy()}

	baggage, err := h.checkIn(c, pnr, rawWeight)
	if err != nil {
		he := middleware.HTTPError(err)
		if middleware.WantsJSON(c) || he.Code >= http.StatusInternalServerError {
			return he
		}
		page.Error = fmt.Sprint(he.Message)
		return c.Render(he.Code, "baggage.html", page)
	}

	if middleware.WantsJSON(c) {
		return c.JSON(http.StatusCreated, dto.ToBaggageResponse(baggage))
	}
	page.Baggage = baggage
	page.Weight = ""
	return c.Render(http.StatusOK, "baggage.html", page)
}

func (h *BaggageHandler) checkIn(c echo.Context, pnr, rawWeight string) (*models.Baggage, error) {
	if pnr == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "pnr is required")
	}
	weight, err := service.ParseWeight(rawWeight)
	if err != nil {
		return nil, err
	}
	return h.svc.CheckIn(c.Request().Context(), pnr, weight)
}

func (h *BaggageHandler) Track(c echo.Context) error {
	tracking, err := h.svc.Track(c.Request().Context(), c.Param("tag"))
	if err != nil {
		return middleware.HTTPError(err)
	}

	if middleware.WantsJSON(c) {
		return c.JSON(http.StatusOK, dto.ToBaggageResponse(tracking.Baggage))
	}
	return c.Render(http.StatusOK, "baggage_track.html", view.TrackPage{Tracking: tracking})
}

func (h *BaggageHandler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	baggage, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("tag"), models.BaggageStatus(req.Status))
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBaggageResponse(baggage))
}
