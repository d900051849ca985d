package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eursukkul/airline-ops/internal/dto"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPassenger(c echo.Context, id uint) {
	c.Set("session", &jwt.Token{Claims: &service.PassengerClaims{PassengerID: id}})
}

func issueContext(e *echo.Echo, target string, xhr bool) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	if xhr {
		req.Header.Set(echo.HeaderXRequestedWith, "XMLHttpRequest")
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	return c, rec
}

func TestIssueTickets_RequiresSession(t *testing.T) {
	h := NewTicketHandler(&mockTicketService{}, &mockInvoiceService{}, 9)
	c, _ := issueContext(newEcho(t), "/flights/5/tickets", false)

	err := h.IssueTickets(c)

	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
}

func TestIssueTickets_RedirectsBrowser(t *testing.T) {
	var gotFlight, gotPassenger uint
	var gotCount int
	tickets := &mockTicketService{
		issueFn: func(ctx context.Context, flightID, passengerID uint, count int) ([]models.Ticket, error) {
			gotFlight, gotPassenger, gotCount = flightID, passengerID, count
			return make([]models.Ticket, count), nil
		},
	}
	h := NewTicketHandler(tickets, &mockInvoiceService{}, 9)
	c, rec := issueContext(newEcho(t), "/flights/5/tickets?passengers=3", false)
	withPassenger(c, 11)

	require.NoError(t, h.IssueTickets(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tickets", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, uint(5), gotFlight)
	assert.Equal(t, uint(11), gotPassenger)
	assert.Equal(t, 3, gotCount)
}

func TestIssueTickets_JSON(t *testing.T) {
	tickets := &mockTicketService{
		issueFn: func(ctx context.Context, flightID, passengerID uint, count int) ([]models.Ticket, error) {
			return []models.Ticket{
				{ID: 1, PNR: "ABC123", FlightID: flightID, SeatNumber: "3A", Price: 100},
				{ID: 2, PNR: "DEF456", FlightID: flightID, SeatNumber: "3B", Price: 100},
			}, nil
		},
	}
	h := NewTicketHandler(tickets, &mockInvoiceService{}, 9)
	c, rec := issueContext(newEcho(t), "/flights/5/tickets?passengers=2", true)
	withPassenger(c, 11)

	require.NoError(t, h.IssueTickets(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body dto.IssueTicketsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Tickets, 2)
	assert.Equal(t, 200.0, body.TotalPrice)
}

func TestIssueTickets_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"flight full", "/flights/5/tickets", service.ErrFlightFull, http.StatusConflict},
		{"flight missing", "/flights/5/tickets", service.ErrFlightNotFound, http.StatusNotFound},
		{"too many passengers", "/flights/5/tickets?passengers=10", nil, http.StatusBadRequest},
		{"bad passenger count", "/flights/5/tickets?passengers=two", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets := &mockTicketService{
				issueFn: func(ctx context.Context, flightID, passengerID uint, count int) ([]models.Ticket, error) {
					return nil, tt.err
				},
			}
			h := NewTicketHandler(tickets, &mockInvoiceService{}, 9)
			c, _ := issueContext(newEcho(t), tt.target, true)
			withPassenger(c, 1)

			err := h.IssueTickets(c)

			assert.Equal(t, tt.want, httpErrorCode(t, err))
		})
	}
}

func TestCancelTicket(t *testing.T) {
	var cancelled uint
	tickets := &mockTicketService{
		cancelFn: func(ctx context.Context, id uint) error {
			if id == 404 {
				return service.ErrTicketNotFound
			}
			cancelled = id
			return nil
		},
	}
	h := NewTicketHandler(tickets, &mockInvoiceService{}, 9)
	e := newEcho(t)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/tickets/8/cancel", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("8")
	require.NoError(t, h.CancelTicket(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, uint(8), cancelled)

	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/tickets/404/cancel", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("404")
	assert.Equal(t, http.StatusNotFound, httpErrorCode(t, h.CancelTicket(c)))
}

func TestCheckIn_JSONNoContent(t *testing.T) {
	tickets := &mockTicketService{
		checkInFn: func(ctx context.Context, id uint) error { return nil },
	}
	h := NewTicketHandler(tickets, &mockInvoiceService{}, 9)
	e := newEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/tickets/2/check-in", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListTickets_HTML(t *testing.T) {
	tickets := &mockTicketService{
		listFn: func(ctx context.Context) ([]models.Ticket, error) {
			return []models.Ticket{{ID: 1, PNR: "QWE789", SeatNumber: "12C", Price: 80}}, nil
		},
	}
	h := NewTicketHandler(tickets, &mockInvoiceService{}, 9)
	e := newEcho(t)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ListTickets(e.NewContext(httptest.NewRequest(http.MethodGet, "/tickets", nil), rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "QWE789")
}

func TestDownloadInvoice(t *testing.T) {
	invoices := &mockInvoiceService{
		generateFn: func(ctx context.Context, id uint) (*service.InvoiceDocument, error) {
			return &service.InvoiceDocument{Filename: "PyFly_Invoice_ABC123.pdf", Content: []byte("%PDF-1.3")}, nil
		},
	}
	h := NewTicketHandler(&mockTicketService{}, invoices, 9)
	e := newEcho(t)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/tickets/1/pdf", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.DownloadInvoice(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="PyFly_Invoice_ABC123.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestDownloadInvoice_RenderFailure(t *testing.T) {
	invoices := &mockInvoiceService{
		generateFn: func(ctx context.Context, id uint) (*service.InvoiceDocument, error) {
			return nil, service.ErrInvoiceRender
		},
	}
	h := NewTicketHandler(&mockTicketService{}, invoices, 9)
	e := newEcho(t)
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/tickets/1/pdf", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.Equal(t, http.StatusInternalServerError, httpErrorCode(t, h.DownloadInvoice(c)))
}
