package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/repository"
	"github.com/Eursukkul/airline-ops/internal/testutil"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock EventPublisher ---

type publishedEvent struct {
	key     string
	payload any
}

type mockPublisher struct {
	mu        sync.Mutex
	events    []publishedEvent
	publishFn func(routingKey string, payload any) error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.mu.Lock()
	m.events = append(m.events, publishedEvent{key: routingKey, payload: payload})
	m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(routingKey, payload)
	}
	return nil
}

func (m *mockPublisher) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, len(m.events))
	for i, e := range m.events {
		keys[i] = e.key
	}
	return keys
}

// --- Mock SearchCache ---

type mockCache struct {
	getFn       func(key string, dest any) bool
	setKeys     []string
	delPatterns []string
}

func (m *mockCache) Get(ctx context.Context, key string, dest any) bool {
	if m.getFn != nil {
		return m.getFn(key, dest)
	}
	return false
}

func (m *mockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	m.setKeys = append(m.setKeys, key)
}

func (m *mockCache) DelPattern(ctx context.Context, pattern string) {
	m.delPatterns = append(m.delPatterns, pattern)
}

// --- Fixtures ---

type fixture struct {
	db        *gorm.DB
	ist, esb  models.Airport
	ayt       models.Airport
	passenger models.Passenger
	flight    models.Flight

	airports   repository.AirportRepository
	aircraft   repository.AircraftRepository
	personnel  repository.PersonnelRepository
	flights    repository.FlightRepository
	passengers repository.PassengerRepository
	tickets    repository.TicketRepository
	baggage    repository.BaggageRepository

	metrics *metrics.Metrics
	log     logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &fixture{
		db:         db,
		airports:   repository.NewAirportRepository(db),
		aircraft:   repository.NewAircraftRepository(db),
		personnel:  repository.NewPersonnelRepository(db),
		flights:    repository.NewFlightRepository(db),
		passengers: repository.NewPassengerRepository(db),
		tickets:    repository.NewTicketRepository(db),
		baggage:    repository.NewBaggageRepository(db),
		metrics:    metrics.New(),
		log:        logger.NewNop(),
	}

	ctx := context.Background()
	f.ist = models.Airport{Code: "IST", Name: "Istanbul Airport", City: "Istanbul"}
	f.esb = models.Airport{Code: "ESB", Name: "Esenboga", City: "Ankara"}
	f.ayt = models.Airport{Code: "AYT", Name: "Antalya Airport", City: "Antalya"}
	for _, a := range []*models.Airport{&f.ist, &f.esb, &f.ayt} {
		require.NoError(t, f.airports.Create(ctx, a))
	}

	f.passenger = models.Passenger{FirstName: "Deniz", LastName: "Kaya", Email: "deniz@example.com", PassportNumber: "U1234567"}
	require.NoError(t, f.passengers.Create(ctx, &f.passenger))

	f.flight = f.addFlight(t, "PY101", f.ist.ID, f.esb.ID, 100, at(2026, 3, 1, 8, 0), 75*time.Minute)
	return f
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func (f *fixture) addFlight(t *testing.T, number string, from, to uint, price float64, dep time.Time, dur time.Duration) models.Flight {
	t.Helper()
	flight := models.Flight{
		FlightNumber:  number,
		OriginID:      from,
		DestinationID: to,
		Gate:          models.DefaultGate,
		Price:         price,
		Status:        models.FlightScheduled,
	}
	if !dep.IsZero() {
		flight.DepartureTime = &dep
		if dur > 0 {
			arr := dep.Add(dur)
			flight.ArrivalTime = &arr
		}
	}
	require.NoError(t, f.flights.Create(context.Background(), &flight))
	return flight
}

func (f *fixture) ticketService(pub EventPublisher, opts TicketServiceOptions) TicketService {
	return NewTicketService(f.tickets, f.flights, f.passengers, pub, f.metrics, f.log, opts)
}

func (f *fixture) baggageService(pub EventPublisher, opts BaggageServiceOptions) BaggageService {
	return NewBaggageService(f.baggage, f.tickets, pub, f.metrics, f.log, opts)
}

func (f *fixture) catalogService(pub EventPublisher, cache SearchCache) CatalogService {
	return NewCatalogService(f.airports, f.aircraft, f.personnel, f.flights, pub, cache, f.log)
}

func (f *fixture) issue(t *testing.T, count int) []models.Ticket {
	t.Helper()
	tickets, err := f.ticketService(nil, TicketServiceOptions{}).IssueTickets(context.Background(), f.flight.ID, f.passenger.ID, count)
	require.NoError(t, err)
	return tickets
}
