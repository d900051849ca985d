package dto

import (
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
)

type CreateAirportRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

func (r CreateAirportRequest) ToModel() *models.Airport {
	return &models.Airport{Code: r.Code, Name: r.Name, City: r.City}
}

type CreateAircraftRequest struct {
	TailNumber       string `json:"tail_number"`
	Model            string `json:"model"`
	CapacityEconomy  int    `json:"capacity_economy"`
	CapacityBusiness int    `json:"capacity_business"`
}

func (r CreateAircraftRequest) ToModel() *models.Aircraft {
	return &models.Aircraft{
		TailNumber:       r.TailNumber,
		Model:            r.Model,
		CapacityEconomy:  r.CapacityEconomy,
		CapacityBusiness: r.CapacityBusiness,
	}
}

type CreatePersonnelRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (r CreatePersonnelRequest) ToModel() *models.Personnel {
	return &models.Personnel{FirstName: r.FirstName, LastName: r.LastName, Role: models.PersonnelRole(r.Role)}
}

type CreateFlightRequest struct {
	FlightNumber  string     `json:"flight_number"`
	OriginID      uint       `json:"origin_id"`
	DestinationID uint       `json:"destination_id"`
	Gate          string     `json:"gate"`
	AircraftID    *uint      `json:"aircraft_id"`
	Price         float64    `json:"price"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
}

func (r CreateFlightRequest) ToInput() service.CreateFlightInput {
	return service.CreateFlightInput{
		FlightNumber:  r.FlightNumber,
		OriginID:      r.OriginID,
		DestinationID: r.DestinationID,
		Gate:          r.Gate,
		AircraftID:    r.AircraftID,
		Price:         r.Price,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AssignCrewRequest struct {
	PersonnelIDs []uint `json:"personnel_ids"`
}

type RegisterPassengerRequest struct {
	FirstName      string `json:"first_name" form:"first_name"`
	LastName       string `json:"last_name" form:"last_name"`
	Email          string `json:"email" form:"email"`
	PassportNumber string `json:"passport_number" form:"passport_number"`
	Phone          string `json:"phone" form:"phone"`
}

func (r RegisterPassengerRequest) ToModel() *models.Passenger {
	return &models.Passenger{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		PassportNumber: r.PassportNumber,
		Phone:          r.Phone,
	}
}

type LoginRequest struct {
	Email          string `json:"email" form:"email"`
	PassportNumber string `json:"passport_number" form:"passport_number"`
}
