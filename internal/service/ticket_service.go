package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/airline-ops/internal/apperr"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/repository"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
	"github.com/Eursukkul/airline-ops/pkg/rabbitmq"
	"gorm.io/gorm"
)

const (
	maxIssueAttempts = 3
	maxPNRAttempts   = 8
)

type TicketService interface {
	IssueTickets(ctx context.Context, flightID, passengerID uint, count int) ([]models.Ticket, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id uint) (*models.Ticket, error)
	FindByPNR(ctx context.Context, pnr string) (*models.Ticket, error)
	CancelTicket(ctx context.Context, id uint) error
	CheckInPassenger(ctx context.Context, id uint) error
}

type TicketServiceOptions struct {
	MaxPassengers int
	SeatMap       SeatMap
	// IntN draws seat rows and letters; nil uses math/rand/v2.
	IntN func(n int) int
	// NewPNR draws reservation codes; nil uses models.NewPNR.
	NewPNR func() string
}

type ticketService struct {
	ticketRepo    repository.TicketRepository
	flightRepo    repository.FlightRepository
	passengerRepo repository.PassengerRepository
	publisher     EventPublisher
	metrics       *metrics.Metrics
	log           logger.Logger
	opts          TicketServiceOptions
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	flightRepo repository.FlightRepository,
	passengerRepo repository.PassengerRepository,
	publisher EventPublisher,
	m *metrics.Metrics,
	log logger.Logger,
	opts TicketServiceOptions,
) TicketService {
	if opts.MaxPassengers <= 0 {
		opts.MaxPassengers = 9
	}
	if opts.SeatMap.Rows == 0 {
		opts.SeatMap = DefaultSeatMap
	}
	if opts.NewPNR == nil {
		opts.NewPNR = models.NewPNR
	}
	return &ticketService{
		ticketRepo:    ticketRepo,
		flightRepo:    flightRepo,
		passengerRepo: passengerRepo,
		publisher:     publisher,
		metrics:       m,
		log:           log,
		opts:          opts,
	}
}

func (s *ticketService) IssueTickets(ctx context.Context, flightID, passengerID uint, count int) ([]models.Ticket, error) {
	if count < 1 || count > s.opts.MaxPassengers {
		return nil, invalid(ErrInvalidPassengerCount, fmt.Sprintf("passengers must be between 1 and %d", s.opts.MaxPassengers))
	}
	if _, err := s.passengerRepo.FindByID(ctx, passengerID); err != nil {
		return nil, notFoundOr(err, ErrPassengerNotFound)
	}

	var (
		tickets []models.Ticket
		err     error
	)
	for attempt := 1; attempt <= maxIssueAttempts; attempt++ {
		tickets, err = s.issueOnce(ctx, flightID, passengerID, count)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		s.log.Warn("ticket issuance hit a unique constraint, retrying",
			"flight_id", flightID, "attempt", attempt, "error", err)
	}
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("issue_tickets").Inc()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(ErrSeatConflict, err)
		}
		return nil, err
	}

	for i := range tickets {
		publish(s.publisher, s.log, rabbitmq.KeyTicketIssued, newTicketEvent(&tickets[i]))
	}
	s.metrics.TicketsIssued.Add(float64(len(tickets)))
	s.log.Info("tickets issued", "flight_id", flightID, "passenger_id", passengerID, "count", len(tickets))

	return tickets, nil
}

func (s *ticketService) issueOnce(ctx context.Context, flightID, passengerID uint, count int) ([]models.Ticket, error) {
	var issued []models.Ticket

	err := s.ticketRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the flight row, serializing issuance per flight
		flight, err := s.flightRepo.FindByIDForUpdate(ctx, tx, flightID)
		if err != nil {
			return notFoundOr(err, ErrFlightNotFound)
		}
		if !flight.Status.Bookable() {
			return ErrFlightNotBookable
		}

		// 2. Check capacity against the seats already sold
		taken, err := s.ticketRepo.TakenSeats(ctx, tx, flightID)
		if err != nil {
			return err
		}
		seats := newSeatAllocator(s.opts.SeatMap, taken, s.opts.IntN)
		if seats.Free() < count {
			return apperr.Wrap(ErrFlightFull, fmt.Errorf("%d requested, %d free", count, seats.Free()))
		}

		// 3. One ticket per passenger slot, distinct seats, fresh PNR each
		issued = make([]models.Ticket, 0, count)
		for range count {
			seat, fallback, _ := seats.Next()
			if fallback {
				s.metrics.SeatAssignmentFallback.Inc()
			}

			pnr, err := s.drawPNR(ctx, tx)
			if err != nil {
				return err
			}

			ticket := models.Ticket{
				PNR:         pnr,
				PassengerID: passengerID,
				FlightID:    flightID,
				SeatNumber:  seat,
				Price:       flight.Price,
			}
			if err := s.ticketRepo.Create(ctx, tx, &ticket); err != nil {
				return err
			}
			issued = append(issued, ticket)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issued, nil
}

func (s *ticketService) drawPNR(ctx context.Context, tx *gorm.DB) (string, error) {
	for range maxPNRAttempts {
		pnr := s.opts.NewPNR()
		exists, err := s.ticketRepo.PNRExists(ctx, tx, pnr)
		if err != nil {
			return "", err
		}
		if !exists {
			return pnr, nil
		}
	}
	return "", ErrPNRExhausted
}

func (s *ticketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.ticketRepo.FindAll(ctx)
}

func (s *ticketService) GetTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrTicketNotFound)
	}
	return ticket, nil
}

func (s *ticketService) FindByPNR(ctx context.Context, pnr string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByPNR(ctx, normalizePNR(pnr))
	if err != nil {
		return nil, notFoundOr(err, ErrTicketNotFound)
	}
	return ticket, nil
}

func (s *ticketService) CancelTicket(ctx context.Context, id uint) error {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}

	err = s.ticketRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err := s.ticketRepo.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ErrTicketNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	publish(s.publisher, s.log, rabbitmq.KeyTicketCancelled, newTicketEvent(ticket))
	s.metrics.TicketsCancelled.Inc()
	s.log.Info("ticket cancelled", "ticket_id", id, "pnr", ticket.PNR)
	return nil
}

func (s *ticketService) CheckInPassenger(ctx context.Context, id uint) error {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	if ticket.IsCheckedIn {
		return nil
	}
	// MySQL reports changed rows only, so the count is not an existence check here.
	if _, err := s.ticketRepo.MarkCheckedIn(ctx, id); err != nil {
		return err
	}
	s.log.Info("passenger checked in", "ticket_id", id, "pnr", ticket.PNR)
	return nil
}
