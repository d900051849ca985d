package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PNRLength = 6

type Ticket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PNR         string    `gorm:"<-:create;type:varchar(6);uniqueIndex;not null" json:"pnr"`
	PassengerID uint      `gorm:"not null;index" json:"passenger_id"`
	FlightID    uint      `gorm:"not null;uniqueIndex:idx_ticket_flight_seat" json:"flight_id"`
	SeatNumber  string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_ticket_flight_seat" json:"seat_number"`
	IsCheckedIn bool      `gorm:"not null;default:false" json:"is_checked_in"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Passenger *Passenger `gorm:"foreignKey:PassengerID;constraint:OnDelete:CASCADE" json:"passenger,omitempty"`
	Flight    *Flight    `gorm:"foreignKey:FlightID;constraint:OnDelete:CASCADE" json:"flight,omitempty"`
	Baggage   *Baggage   `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"baggage,omitempty"`
}

// NewPNR draws a 6-character uppercase reservation code from a random UUID.
func NewPNR() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:PNRLength]
}

// BeforeCreate assigns a reservation code only when none is set yet.
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.PNR == "" {
		t.PNR = NewPNR()
	}
	return nil
}
