package repository

import (
	"context"

	"github.com/Eursukkul/airline-ops/internal/models"
	"gorm.io/gorm"
)

type AirportRepository interface {
	Create(ctx context.Context, airport *models.Airport) error
	FindByID(ctx context.Context, id uint) (*models.Airport, error)
	FindAll(ctx context.Context) ([]models.Airport, error)
}

type airportRepository struct {
	db *gorm.DB
}

func NewAirportRepository(db *gorm.DB) AirportRepository {
	return &airportRepository{db: db}
}

func (r *airportRepository) Create(ctx context.Context, airport *models.Airport) error {
	return r.db.WithContext(ctx).Create(airport).Error
}

func (r *airportRepository) FindByID(ctx context.Context, id uint) (*models.Airport, error) {
	var airport models.Airport
	if err := r.db.WithContext(ctx).First(&airport, id).Error; err != nil {
		return nil, err
	}
	return &airport, nil
}

// FindAll lists airports ordered by city, the order the search form shows them in.
func (r *airportRepository) FindAll(ctx context.Context) ([]models.Airport, error) {
	var airports []models.Airport
	if err := r.db.WithContext(ctx).Order("city ASC, code ASC").Find(&airports).Error; err != nil {
		return nil, err
	}
	return airports, nil
}
