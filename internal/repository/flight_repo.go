package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FlightFilter narrows a flight query; nil fields do not filter.
type FlightFilter struct {
	OriginID      *uint
	DestinationID *uint
	DepartsFrom   *time.Time // inclusive
	DepartsBefore *time.Time // exclusive
	MaxPrice      *float64
}

type FlightRepository interface {
	Create(ctx context.Context, flight *models.Flight) error
	FindByID(ctx context.Context, id uint) (*models.Flight, error)
	FindByNumber(ctx context.Context, number string) (*models.Flight, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Flight, error)
	Search(ctx context.Context, filter FlightFilter) ([]models.Flight, error)
	UpdateStatus(ctx context.Context, id uint, status models.FlightStatus) error
	ReplaceCrew(ctx context.Context, flight *models.Flight, crew []models.Personnel) error
}

type flightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) FlightRepository {
	return &flightRepository{db: db}
}

func (r *flightRepository) Create(ctx context.Context, flight *models.Flight) error {
	return r.db.WithContext(ctx).Omit("Crew").Create(flight).Error
}

func (r *flightRepository) FindByID(ctx context.Context, id uint) (*models.Flight, error) {
	var flight models.Flight
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		Preload("Aircraft").
		Preload("Crew").
		First(&flight, id).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *flightRepository) FindByNumber(ctx context.Context, number string) (*models.Flight, error) {
	var flight models.Flight
	if err := r.db.WithContext(ctx).Where("flight_number = ?", number).First(&flight).Error; err != nil {
		return nil, err
	}
	return &flight, nil
}

// FindByIDForUpdate acquires a row-level lock on the flight within the given transaction.
// SQLite has no row locks; its single writer gives the same serialization.
func (r *flightRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Flight, error) {
	var flight models.Flight
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&flight, id).Error; err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *flightRepository) Search(ctx context.Context, filter FlightFilter) ([]models.Flight, error) {
	q := r.db.WithContext(ctx).Preload("Origin").Preload("Destination")

	if filter.OriginID != nil {
		q = q.Where("origin_id = ?", *filter.OriginID)
	}
	if filter.DestinationID != nil {
		q = q.Where("destination_id = ?", *filter.DestinationID)
	}
	if filter.DepartsFrom != nil {
		q = q.Where("departure_time >= ?", *filter.DepartsFrom)
	}
	if filter.DepartsBefore != nil {
		q = q.Where("departure_time < ?", *filter.DepartsBefore)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}

	var flights []models.Flight
	if err := q.Order("id ASC").Find(&flights).Error; err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *flightRepository) UpdateStatus(ctx context.Context, id uint, status models.FlightStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Flight{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *flightRepository) ReplaceCrew(ctx context.Context, flight *models.Flight, crew []models.Personnel) error {
	return r.db.WithContext(ctx).Model(flight).Association("Crew").Replace(crew)
}
