package server

import (
	"github.com/Eursukkul/airline-ops/config"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/repository"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
	"gorm.io/gorm"
)

type Services struct {
	Search   service.SearchService
	Catalog  service.CatalogService
	Tickets  service.TicketService
	Invoices service.InvoiceService
	Baggage  service.BaggageService
	Sessions service.SessionService
}

// NewServices wires repositories and services over db. publisher and cache
// may be nil interfaces to run without a broker or Redis.
func NewServices(
	db *gorm.DB,
	cfg *config.Config,
	publisher service.EventPublisher,
	cache service.SearchCache,
	m *metrics.Metrics,
	log logger.Logger,
) Services {
	airportRepo := repository.NewAirportRepository(db)
	aircraftRepo := repository.NewAircraftRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	flightRepo := repository.NewFlightRepository(db)
	passengerRepo := repository.NewPassengerRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	baggageRepo := repository.NewBaggageRepository(db)

	tickets := service.NewTicketService(ticketRepo, flightRepo, passengerRepo, publisher, m, log.With("component", "tickets"),
		service.TicketServiceOptions{MaxPassengers: cfg.MaxPassengersPerBooking})

	return Services{
		Search:   service.NewSearchService(flightRepo, cache, cfg.SearchCacheTTL, m, log.With("component", "search")),
		Catalog:  service.NewCatalogService(airportRepo, aircraftRepo, personnelRepo, flightRepo, publisher, cache, log.With("component", "catalog")),
		Tickets:  tickets,
		Invoices: service.NewInvoiceService(tickets, cfg.BrandName, log.With("component", "invoices")),
		Baggage: service.NewBaggageService(baggageRepo, ticketRepo, publisher, m, log.With("component", "baggage"),
			service.BaggageServiceOptions{
				Policy:    models.BaggagePolicy{FreeAllowanceKg: cfg.BaggageFreeKg, RatePerKg: cfg.BaggageRatePerKg},
				TagPrefix: cfg.TagPrefix(),
			}),
		Sessions: service.NewSessionService(passengerRepo, cfg.JWTSecret, cfg.SessionTTL, log.With("component", "sessions")),
	}
}
