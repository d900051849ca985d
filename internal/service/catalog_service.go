package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/repository"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/rabbitmq"
)

type CreateFlightInput struct {
	FlightNumber  string
	OriginID      uint
	DestinationID uint
	Gate          string
	AircraftID    *uint
	Price         float64
	DepartureTime *time.Time
	ArrivalTime   *time.Time
}

// CatalogService manages the operator-owned reference data: airports, fleet,
// crew and the flight schedule.
type CatalogService interface {
	ListAirports(ctx context.Context) ([]models.Airport, error)
	CreateAirport(ctx context.Context, airport *models.Airport) error
	ListAircraft(ctx context.Context) ([]models.Aircraft, error)
	CreateAircraft(ctx context.Context, aircraft *models.Aircraft) error
	ListPersonnel(ctx context.Context, role *models.PersonnelRole) ([]models.Personnel, error)
	CreatePersonnel(ctx context.Context, p *models.Personnel) error

	CreateFlight(ctx context.Context, in CreateFlightInput) (*models.Flight, error)
	GetFlight(ctx context.Context, id uint) (*models.Flight, error)
	AssignCrew(ctx context.Context, flightID uint, personnelIDs []uint) (*models.Flight, error)
	UpdateFlightStatus(ctx context.Context, flightID uint, status models.FlightStatus) (*models.Flight, error)
	UpdateFlightStatusByNumber(ctx context.Context, flightNumber string, status models.FlightStatus) (*models.Flight, error)
}

type catalogService struct {
	airportRepo   repository.AirportRepository
	aircraftRepo  repository.AircraftRepository
	personnelRepo repository.PersonnelRepository
	flightRepo    repository.FlightRepository
	publisher     EventPublisher
	cache         SearchCache
	log           logger.Logger
}

func NewCatalogService(
	airportRepo repository.AirportRepository,
	aircraftRepo repository.AircraftRepository,
	personnelRepo repository.PersonnelRepository,
	flightRepo repository.FlightRepository,
	publisher EventPublisher,
	cache SearchCache,
	log logger.Logger,
) CatalogService {
	return &catalogService{
		airportRepo:   airportRepo,
		aircraftRepo:  aircraftRepo,
		personnelRepo: personnelRepo,
		flightRepo:    flightRepo,
		publisher:     publisher,
		cache:         cache,
		log:           log,
	}
}

func (s *catalogService) ListAirports(ctx context.Context) ([]models.Airport, error) {
	return s.airportRepo.FindAll(ctx)
}

func (s *catalogService) CreateAirport(ctx context.Context, airport *models.Airport) error {
	airport.Code = strings.ToUpper(strings.TrimSpace(airport.Code))
	if len(airport.Code) != 3 {
		return invalid(ErrInvalidInput, "airport code must have 3 letters")
	}
	if strings.TrimSpace(airport.Name) == "" || strings.TrimSpace(airport.City) == "" {
		return invalid(ErrInvalidInput, "airport name and city are required")
	}
	return writeErr(s.airportRepo.Create(ctx, airport))
}

func (s *catalogService) ListAircraft(ctx context.Context) ([]models.Aircraft, error) {
	return s.aircraftRepo.FindAll(ctx)
}

func (s *catalogService) CreateAircraft(ctx context.Context, aircraft *models.Aircraft) error {
	aircraft.TailNumber = strings.ToUpper(strings.TrimSpace(aircraft.TailNumber))
	if aircraft.TailNumber == "" || strings.TrimSpace(aircraft.Model) == "" {
		return invalid(ErrInvalidInput, "tail number and model are required")
	}
	if aircraft.CapacityEconomy == 0 && aircraft.CapacityBusiness == 0 {
		aircraft.CapacityEconomy, aircraft.CapacityBusiness = 180, 20
	}
	if aircraft.CapacityEconomy < 0 || aircraft.CapacityBusiness < 0 {
		return invalid(ErrInvalidInput, "capacities cannot be negative")
	}
	return writeErr(s.aircraftRepo.Create(ctx, aircraft))
}

func (s *catalogService) ListPersonnel(ctx context.Context, role *models.PersonnelRole) ([]models.Personnel, error) {
	if role != nil && !role.Valid() {
		return nil, invalid(ErrInvalidInput, fmt.Sprintf("unknown role %q", *role))
	}
	return s.personnelRepo.FindAll(ctx, role)
}

func (s *catalogService) CreatePersonnel(ctx context.Context, p *models.Personnel) error {
	p.Role = models.PersonnelRole(strings.ToUpper(strings.TrimSpace(string(p.Role))))
	if !p.Role.Valid() {
		return invalid(ErrInvalidInput, fmt.Sprintf("role must be one of %s, %s, %s",
			models.RolePilot, models.RoleCabinCrew, models.RoleOperations))
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return invalid(ErrInvalidInput, "first and last name are required")
	}
	return s.personnelRepo.Create(ctx, p)
}

func (s *catalogService) CreateFlight(ctx context.Context, in CreateFlightInput) (*models.Flight, error) {
	number := strings.ToUpper(strings.TrimSpace(in.FlightNumber))
	if number == "" {
		return nil, invalid(ErrInvalidInput, "flight number is required")
	}
	if in.OriginID == in.DestinationID {
		return nil, invalid(ErrInvalidInput, "origin and destination must differ")
	}
	if in.Price < 0 {
		return nil, invalid(ErrInvalidInput, "price cannot be negative")
	}
	if in.DepartureTime != nil && in.ArrivalTime != nil && !in.ArrivalTime.After(*in.DepartureTime) {
		return nil, invalid(ErrInvalidInput, "arrival must be after departure")
	}

	if _, err := s.airportRepo.FindByID(ctx, in.OriginID); err != nil {
		return nil, notFoundOr(err, ErrAirportNotFound)
	}
	if _, err := s.airportRepo.FindByID(ctx, in.DestinationID); err != nil {
		return nil, notFoundOr(err, ErrAirportNotFound)
	}
	if in.AircraftID != nil {
		if _, err := s.aircraftRepo.FindByID(ctx, *in.AircraftID); err != nil {
			return nil, notFoundOr(err, ErrAircraftNotFound)
		}
	}

	gate := strings.TrimSpace(in.Gate)
	if gate == "" {
		gate = models.DefaultGate
	}

	flight := &models.Flight{
		FlightNumber:  number,
		OriginID:      in.OriginID,
		DestinationID: in.DestinationID,
		Gate:          gate,
		AircraftID:    in.AircraftID,
		Price:         in.Price,
		DepartureTime: utcPtr(in.DepartureTime),
		ArrivalTime:   utcPtr(in.ArrivalTime),
		Status:        models.FlightScheduled,
	}
	if err := s.flightRepo.Create(ctx, flight); err != nil {
		return nil, writeErr(err)
	}

	invalidateSearchCache(ctx, s.cache)
	s.log.Info("flight created", "flight_id", flight.ID, "flight_number", flight.FlightNumber)

	return s.flightRepo.FindByID(ctx, flight.ID)
}

func (s *catalogService) GetFlight(ctx context.Context, id uint) (*models.Flight, error) {
	flight, err := s.flightRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrFlightNotFound)
	}
	return flight, nil
}

func (s *catalogService) AssignCrew(ctx context.Context, flightID uint, personnelIDs []uint) (*models.Flight, error) {
	flight, err := s.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	crew, err := s.personnelRepo.FindByIDs(ctx, personnelIDs)
	if err != nil {
		return nil, err
	}
	if len(crew) != len(uniqueIDs(personnelIDs)) {
		return nil, ErrPersonnelNotFound
	}

	if err := s.flightRepo.ReplaceCrew(ctx, flight, crew); err != nil {
		return nil, err
	}
	return s.GetFlight(ctx, flightID)
}

func (s *catalogService) UpdateFlightStatus(ctx context.Context, flightID uint, status models.FlightStatus) (*models.Flight, error) {
	flight, err := s.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, flight, status)
}

func (s *catalogService) UpdateFlightStatusByNumber(ctx context.Context, flightNumber string, status models.FlightStatus) (*models.Flight, error) {
	flight, err := s.flightRepo.FindByNumber(ctx, strings.ToUpper(strings.TrimSpace(flightNumber)))
	if err != nil {
		return nil, notFoundOr(err, ErrFlightNotFound)
	}
	return s.transition(ctx, flight, status)
}

func (s *catalogService) transition(ctx context.Context, flight *models.Flight, status models.FlightStatus) (*models.Flight, error) {
	status = models.FlightStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return nil, invalid(ErrInvalidStatus, fmt.Sprintf("unknown flight status %q", status))
	}
	if flight.Status == status {
		return flight, nil
	}
	if !flight.Status.CanTransitionTo(status) {
		return nil, invalid(ErrInvalidTransition, fmt.Sprintf("%s -> %s", flight.Status, status))
	}

	if err := s.flightRepo.UpdateStatus(ctx, flight.ID, status); err != nil {
		return nil, err
	}

	from := flight.Status
	flight.Status = status
	invalidateSearchCache(ctx, s.cache)
	publish(s.publisher, s.log, rabbitmq.KeyFlightStatusChanged, FlightStatusEvent{
		FlightID:     flight.ID,
		FlightNumber: flight.FlightNumber,
		From:         from,
		To:           status,
		OccurredAt:   time.Now().UTC(),
	})
	s.log.Info("flight status changed", "flight_number", flight.FlightNumber, "from", from, "to", status)

	return flight, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
