package handler

import (
	"context"
	"testing"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/Eursukkul/airline-ops/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// --- Mock SearchService ---

type mockSearchService struct {
	searchFn func(ctx context.Context, q service.SearchQuery) ([]service.FlightResult, error)
}

func (m *mockSearchService) Search(ctx context.Context, q service.SearchQuery) ([]service.FlightResult, error) {
	return m.searchFn(ctx, q)
}

// --- Mock CatalogService ---

type mockCatalogService struct {
	listAirportsFn  func(ctx context.Context) ([]models.Airport, error)
	createFlightFn  func(ctx context.Context, in service.CreateFlightInput) (*models.Flight, error)
	getFlightFn     func(ctx context.Context, id uint) (*models.Flight, error)
	updateStatusFn  func(ctx context.Context, id uint, status models.FlightStatus) (*models.Flight, error)
	assignCrewFn    func(ctx context.Context, id uint, ids []uint) (*models.Flight, error)
	createAirportFn func(ctx context.Context, a *models.Airport) error
}

func (m *mockCatalogService) ListAirports(ctx context.Context) ([]models.Airport, error) {
	if m.listAirportsFn == nil {
		return nil, nil
	}
	return m.listAirportsFn(ctx)
}
func (m *mockCatalogService) CreateAirport(ctx context.Context, a *models.Airport) error {
	return m.createAirportFn(ctx, a)
}
func (m *mockCatalogService) ListAircraft(ctx context.Context) ([]models.Aircraft, error) {
	return nil, nil
}
func (m *mockCatalogService) CreateAircraft(ctx context.Context, a *models.Aircraft) error {
	return nil
}
func (m *mockCatalogService) ListPersonnel(ctx context.Context, role *models.PersonnelRole) ([]models.Personnel, error) {
	return nil, nil
}
func (m *mockCatalogService) CreatePersonnel(ctx context.Context, p *models.Personnel) error {
	return nil
}
func (m *mockCatalogService) CreateFlight(ctx context.Context, in service.CreateFlightInput) (*models.Flight, error) {
	return m.createFlightFn(ctx, in)
}
func (m *mockCatalogService) GetFlight(ctx context.Context, id uint) (*models.Flight, error) {
	return m.getFlightFn(ctx, id)
}
func (m *mockCatalogService) AssignCrew(ctx context.Context, id uint, ids []uint) (*models.Flight, error) {
	return m.assignCrewFn(ctx, id, ids)
}
func (m *mockCatalogService) UpdateFlightStatus(ctx context.Context, id uint, status models.FlightStatus) (*models.Flight, error) {
	return m.updateStatusFn(ctx, id, status)
}
func (m *mockCatalogService) UpdateFlightStatusByNumber(ctx context.Context, number string, status models.FlightStatus) (*models.Flight, error) {
	return nil, nil
}

// --- Mock TicketService ---

type mockTicketService struct {
	issueFn   func(ctx context.Context, flightID, passengerID uint, count int) ([]models.Ticket, error)
	listFn    func(ctx context.Context) ([]models.Ticket, error)
	getFn     func(ctx context.Context, id uint) (*models.Ticket, error)
	cancelFn  func(ctx context.Context, id uint) error
	checkInFn func(ctx context.Context, id uint) error
}

func (m *mockTicketService) IssueTickets(ctx context.Context, flightID, passengerID uint, count int) ([]models.Ticket, error) {
	return m.issueFn(ctx, flightID, passengerID, count)
}
func (m *mockTicketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return m.listFn(ctx)
}
func (m *mockTicketService) GetTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	return m.getFn(ctx, id)
}
func (m *mockTicketService) FindByPNR(ctx context.Context, pnr string) (*models.Ticket, error) {
	return nil, service.ErrTicketNotFound
}
func (m *mockTicketService) CancelTicket(ctx context.Context, id uint) error {
	return m.cancelFn(ctx, id)
}
func (m *mockTicketService) CheckInPassenger(ctx context.Context, id uint) error {
	return m.checkInFn(ctx, id)
}

// --- Mock InvoiceService ---

type mockInvoiceService struct {
	generateFn func(ctx context.Context, id uint) (*service.InvoiceDocument, error)
}

func (m *mockInvoiceService) Generate(ctx context.Context, id uint) (*service.InvoiceDocument, error) {
	return m.generateFn(ctx, id)
}

// --- Mock BaggageService ---

type mockBaggageService struct {
	checkInFn      func(ctx context.Context, pnr string, weight float64) (*models.Baggage, error)
	trackFn        func(ctx context.Context, tag string) (*service.BaggageTracking, error)
	updateStatusFn func(ctx context.Context, tag string, status models.BaggageStatus) (*models.Baggage, error)
}

func (m *mockBaggageService) CheckIn(ctx context.Context, pnr string, weight float64) (*models.Baggage, error) {
	return m.checkInFn(ctx, pnr, weight)
}
func (m *mockBaggageService) Track(ctx context.Context, tag string) (*service.BaggageTracking, error) {
	return m.trackFn(ctx, tag)
}
func (m *mockBaggageService) UpdateStatus(ctx context.Context, tag string, status models.BaggageStatus) (*models.Baggage, error) {
	return m.updateStatusFn(ctx, tag, status)
}
func (m *mockBaggageService) Policy() models.BaggagePolicy {
	return models.DefaultBaggagePolicy
}

// --- Mock SessionService ---

type mockSessionService struct {
	registerFn func(ctx context.Context, p *models.Passenger) (*service.Session, error)
	loginFn    func(ctx context.Context, email, passport string) (*service.Session, error)
}

func (m *mockSessionService) Register(ctx context.Context, p *models.Passenger) (*service.Session, error) {
	return m.registerFn(ctx, p)
}
func (m *mockSessionService) Login(ctx context.Context, email, passport string) (*service.Session, error) {
	return m.loginFn(ctx, email, passport)
}
func (m *mockSessionService) ParseToken(token string) (*service.PassengerClaims, error) {
	return nil, service.ErrUnauthorizedSession
}

// --- Helpers ---

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := view.New("PyFly")
	require.NoError(t, err)
	e.Renderer = r
	return e
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T: %v", err, err)
	return he.Code
}
