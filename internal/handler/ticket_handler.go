package handler

import (
	"fmt"
	"net/http"

	"github.com/Eursukkul/airline-ops/internal/dto"
	"github.com/Eursukkul/airline-ops/internal/middleware"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/Eursukkul/airline-ops/internal/view"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	tickets       service.TicketService
	invoices      service.InvoiceService
	maxPassengers int
}

func NewTicketHandler(tickets service.TicketService, invoices service.InvoiceService, maxPassengers int) *TicketHandler {
	return &TicketHandler{tickets: tickets, invoices: invoices, maxPassengers: maxPassengers}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.POST("/flights/:id/tickets", h.IssueTickets, g.Session)
	e.GET("/tickets", h.ListTickets)
	e.GET("/tickets/:id/pdf", h.DownloadInvoice)
	e.POST("/tickets/:id/cancel", h.CancelTicket)
	e.POST("/tickets/:id/check-in", h.CheckIn)

	e.GET("/api/v1/tickets/:pnr", h.GetByPNR)
}

func (h *TicketHandler) IssueTickets(c echo.Context) error {
	flightID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	passengerID, ok := middleware.PassengerID(c)
	if !ok {
		return middleware.HTTPError(service.ErrUnauthorizedSession)
	}

	raw := c.QueryParam("passengers")
	if raw == "" {
		raw = c.FormValue("passengers")
	}
	count := 1
	if raw != "" {
		if count, err = service.ParsePassengerCount(raw, h.maxPassengers); err != nil {
			return middleware.HTTPError(err)
		}
	}

	tickets, err := h.tickets.IssueTickets(c.Request().Context(), flightID, passengerID, count)
	if err != nil {
		return middleware.HTTPError(err)
	}

	if middleware.WantsJSON(c) {
		return c.JSON(http.StatusCreated, dto.ToIssueTicketsResponse(tickets))
	}
	return c.Redirect(http.StatusSeeOther, "/tickets")
}

func (h *TicketHandler) ListTickets(c echo.Context) error {
	tickets, err := h.tickets.ListTickets(c.Request().Context())
	if err != nil {
		return middleware.HTTPError(err)
	}

	if middleware.WantsJSON(c) {
		resp := make([]dto.TicketResponse, len(tickets))
		for i := range tickets {
			resp[i] = dto.ToTicketResponse(&tickets[i])
		}
		return c.JSON(http.StatusOK, resp)
	}
	return c.Render(http.StatusOK, "tickets.html", view.TicketsPage{Tickets: tickets})
}

func (h *TicketHandler) GetByPNR(c echo.Context) error {
	ticket, err := h.tickets.FindByPNR(c.Request().Context(), c.Param("pnr"))
	if err != nil {
		return middleware.HTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}

func (h *TicketHandler) CancelTicket(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tickets.CancelTicket(c.Request().Context(), id); err != nil {
		return middleware.HTTPError(err)
	}

	if middleware.WantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, "/tickets")
}

func (h *TicketHandler) CheckIn(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tickets.CheckInPassenger(c.Request().Context(), id); err != nil {
		return middleware.HTTPError(err)
	}

	if middleware.WantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, "/tickets")
}

func (h *TicketHandler) DownloadInvoice(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	doc, err := h.invoices.Generate(c.Request().Context(), id)
	if err != nil {
		return middleware.HTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, "application/pdf", doc.Content)
}
