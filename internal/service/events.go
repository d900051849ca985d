package service

import (
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/rabbitmq"
)

// EventPublisher ships domain events to the message broker. A nil publisher
// disables messaging.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type TicketEvent struct {
	TicketID    uint      `json:"ticket_id"`
	PNR         string    `json:"pnr"`
	FlightID    uint      `json:"flight_id"`
	PassengerID uint      `json:"passenger_id"`
	SeatNumber  string    `json:"seat_number"`
	Price       float64   `json:"price"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type BaggageEvent struct {
	BaggageID  uint                 `json:"baggage_id"`
	TicketID   uint                 `json:"ticket_id"`
	TagNumber  string               `json:"tag_number"`
	Weight     float64              `json:"weight"`
	ExtraFee   float64              `json:"extra_fee"`
	Status     models.BaggageStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

type FlightStatusEvent struct {
	FlightID     uint                `json:"flight_id"`
	FlightNumber string              `json:"flight_number"`
	From         models.FlightStatus `json:"from"`
	To           models.FlightStatus `json:"to"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

func newTicketEvent(t *models.Ticket) TicketEvent {
	return TicketEvent{
		TicketID:    t.ID,
		PNR:         t.PNR,
		FlightID:    t.FlightID,
		PassengerID: t.PassengerID,
		SeatNumber:  t.SeatNumber,
		Price:       t.Price,
		OccurredAt:  time.Now().UTC(),
	}
}

// publish is fire-and-forget: the database write already committed.
func publish(pub EventPublisher, log logger.Logger, routingKey string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(routingKey, payload); err != nil {
		log.Warn("failed to publish event", "routing_key", routingKey, "error", err)
	}
}

var _ EventPublisher = (*rabbitmq.Publisher)(nil)
