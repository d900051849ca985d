package models

import (
	"fmt"
	"time"
)

type FlightStatus string

const (
	FlightScheduled FlightStatus = "SCH"
	FlightDelayed   FlightStatus = "DLY"
	FlightCancelled FlightStatus = "CNL"
	FlightCompleted FlightStatus = "CMP"
)

var flightTransitions = map[FlightStatus][]FlightStatus{
	FlightScheduled: {FlightDelayed, FlightCancelled, FlightCompleted},
	FlightDelayed:   {FlightScheduled, FlightCancelled, FlightCompleted},
}

func (s FlightStatus) Valid() bool {
	switch s {
	case FlightScheduled, FlightDelayed, FlightCancelled, FlightCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether an operator may move a flight from s to next.
// Cancelled and completed flights are terminal.
func (s FlightStatus) CanTransitionTo(next FlightStatus) bool {
	for _, allowed := range flightTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Bookable is false once a flight is cancelled or completed.
func (s FlightStatus) Bookable() bool {
	return s == FlightScheduled || s == FlightDelayed
}

const DefaultGate = "B12"

type Flight struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	FlightNumber  string       `gorm:"type:varchar(10);uniqueIndex;not null" json:"flight_number"`
	OriginID      uint         `gorm:"not null;index" json:"origin_id"`
	DestinationID uint         `gorm:"not null;index" json:"destination_id"`
	Gate          string       `gorm:"type:varchar(10);not null;default:'B12'" json:"gate"`
	AircraftID    *uint        `json:"aircraft_id,omitempty"`
	Price         float64      `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	DepartureTime *time.Time   `gorm:"index" json:"departure_time,omitempty"`
	ArrivalTime   *time.Time   `json:"arrival_time,omitempty"`
	Status        FlightStatus `gorm:"type:varchar(3);not null;default:'SCH'" json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	Origin      *Airport    `gorm:"foreignKey:OriginID;constraint:OnDelete:CASCADE" json:"origin,omitempty"`
	Destination *Airport    `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE" json:"destination,omitempty"`
	Aircraft    *Aircraft   `gorm:"foreignKey:AircraftID;constraint:OnDelete:SET NULL" json:"aircraft,omitempty"`
	Crew        []Personnel `gorm:"many2many:flight_crew" json:"crew,omitempty"`
}

// Duration is arrival minus departure. ok is false when either timestamp is
// missing or the arrival precedes the departure.
func (f *Flight) Duration() (d time.Duration, ok bool) {
	if f.DepartureTime == nil || f.ArrivalTime == nil {
		return 0, false
	}
	d = f.ArrivalTime.Sub(*f.DepartureTime)
	if d < 0 {
		return 0, false
	}
	return d, true
}

// DurationText renders the block time as "2h 35m", or "N/A".
func (f *Flight) DurationText() string {
	d, ok := f.Duration()
	if !ok {
		return "N/A"
	}
	total := int(d.Minutes())
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

func (f *Flight) OriginCode() string {
	if f.Origin == nil {
		return ""
	}
	return f.Origin.Code
}

func (f *Flight) DestinationCode() string {
	if f.Destination == nil {
		return ""
	}
	return f.Destination.Code
}
