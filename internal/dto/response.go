package dto

import (
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
)

const clockLayout = "15:04"

// FlightSummary is one row of the flight search JSON.
type FlightSummary struct {
	ID           uint                `json:"id"`
	FlightNumber string              `json:"flight_number"`
	Departure    string              `json:"departure"`
	Arrival      string              `json:"arrival"`
	OriginCode   string              `json:"origin_code"`
	DestCode     string              `json:"dest_code"`
	Price        float64             `json:"price"`
	TotalPrice   float64             `json:"total_price"`
	Duration     string              `json:"duration"`
	Status       models.FlightStatus `json:"status"`
	Gate         string              `json:"gate"`
}

type FlightSearchResponse struct {
	Flights []FlightSummary `json:"flights"`
}

type TicketResponse struct {
	ID           uint      `json:"id"`
	PNR          string    `json:"pnr"`
	FlightID     uint      `json:"flight_id"`
	FlightNumber string    `json:"flight_number,omitempty"`
	PassengerID  uint      `json:"passenger_id"`
	SeatNumber   string    `json:"seat_number"`
	Price        float64   `json:"price"`
	IsCheckedIn  bool      `json:"is_checked_in"`
	CreatedAt    time.Time `json:"created_at"`
}

type IssueTicketsResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalPrice float64          `json:"total_price"`
}

type BaggageResponse struct {
	ID        uint                 `json:"id"`
	TicketID  uint                 `json:"ticket_id"`
	PNR       string               `json:"pnr,omitempty"`
	TagNumber string               `json:"tag_number"`
	Weight    float64              `json:"weight"`
	ExtraFee  float64              `json:"extra_fee"`
	Status    models.BaggageStatus `json:"status"`
	Progress  int                  `json:"progress"`
}

type SessionResponse struct {
	PassengerID uint      `json:"passenger_id"`
	Name        string    `json:"name"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(clockLayout)
}

func ToFlightSummary(r service.FlightResult) FlightSummary {
	f := r.Flight
	return FlightSummary{
		ID:           f.ID,
		FlightNumber: f.FlightNumber,
		Departure:    clock(f.DepartureTime),
		Arrival:      clock(f.ArrivalTime),
		OriginCode:   f.OriginCode(),
		DestCode:     f.DestinationCode(),
		Price:        f.Price,
		TotalPrice:   r.TotalPrice,
		Duration:     f.DurationText(),
		Status:       f.Status,
		Gate:         f.Gate,
	}
}

func ToFlightSearchResponse(results []service.FlightResult) FlightSearchResponse {
	resp := FlightSearchResponse{Flights: make([]FlightSummary, len(results))}
	for i, r := range results {
		resp.Flights[i] = ToFlightSummary(r)
	}
	return resp
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:          t.ID,
		PNR:         t.PNR,
		FlightID:    t.FlightID,
		PassengerID: t.PassengerID,
		SeatNumber:  t.SeatNumber,
		Price:       t.Price,
		IsCheckedIn: t.IsCheckedIn,
		CreatedAt:   t.CreatedAt,
	}
	if t.Flight != nil {
		resp.FlightNumber = t.Flight.FlightNumber
	}
	return resp
}

func ToIssueTicketsResponse(tickets []models.Ticket) IssueTicketsResponse {
	resp := IssueTicketsResponse{Tickets: make([]TicketResponse, len(tickets))}
	for i := range tickets {
		resp.Tickets[i] = ToTicketResponse(&tickets[i])
		resp.TotalPrice += tickets[i].Price
	}
	return resp
}

func ToBaggageResponse(b *models.Baggage) BaggageResponse {
	resp := BaggageResponse{
		ID:        b.ID,
		TicketID:  b.TicketID,
		TagNumber: b.TagNumber,
		Weight:    b.Weight,
		ExtraFee:  b.ExtraFee,
		Status:    b.Status,
		Progress:  b.Status.Progress(),
	}
	if b.Ticket != nil {
		resp.PNR = b.Ticket.PNR
	}
	return resp
}

func ToSessionResponse(s *service.Session) SessionResponse {
	return SessionResponse{
		PassengerID: s.Passenger.ID,
		Name:        s.Passenger.FullName(),
		Token:       s.Token,
		ExpiresAt:   s.ExpiresAt,
	}
}
