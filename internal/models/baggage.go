package models

import (
	"math"
	"time"
)

type BaggageStatus string

const (
	BaggageChecked   BaggageStatus = "CHECKED"
	BaggageLoaded    BaggageStatus = "LOADED"
	BaggageDelivered BaggageStatus = "DELIVERED"
	BaggageLost      BaggageStatus = "LOST"
)

var baggageProgress = map[BaggageStatus]int{
	BaggageChecked:   25,
	BaggageLoaded:    50,
	BaggageDelivered: 100,
	BaggageLost:      0,
}

var baggageTransitions = map[BaggageStatus][]BaggageStatus{
	BaggageChecked: {BaggageLoaded, BaggageLost},
	BaggageLoaded:  {BaggageDelivered, BaggageLost},
	BaggageLost:    {BaggageDelivered},
}

func (s BaggageStatus) Valid() bool {
	_, ok := baggageProgress[s]
	return ok
}

// Progress is the tracking-view percentage; unknown statuses map to 0.
func (s BaggageStatus) Progress() int {
	return baggageProgress[s]
}

func (s BaggageStatus) CanTransitionTo(next BaggageStatus) bool {
	for _, allowed := range baggageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Baggage struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	TicketID  uint          `gorm:"not null;uniqueIndex" json:"ticket_id"`
	Weight    float64       `gorm:"type:decimal(5,2);not null" json:"weight"`
	Status    BaggageStatus `gorm:"type:varchar(20);not null;default:'CHECKED'" json:"status"`
	ExtraFee  float64       `gorm:"type:decimal(10,2);not null;default:0" json:"extra_fee"`
	TagNumber string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"tag_number"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Ticket *Ticket `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`
}

// BaggagePolicy is the free allowance and the per-kilogram overweight rate.
type BaggagePolicy struct {
	FreeAllowanceKg float64
	RatePerKg       float64
}

var DefaultBaggagePolicy = BaggagePolicy{FreeAllowanceKg: 20, RatePerKg: 50}

// Surcharge is max(0, weight - allowance) * rate, rounded to cents.
func (p BaggagePolicy) Surcharge(weight float64) float64 {
	over := weight - p.FreeAllowanceKg
	if over <= 0 {
		return 0
	}
	return math.Round(over*p.RatePerKg*100) / 100
}
