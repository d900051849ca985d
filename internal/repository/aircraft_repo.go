package repository

import (
	"context"

	"github.com/Eursukkul/airline-ops/internal/models"
	"gorm.io/gorm"
)

type AircraftRepository interface {
	Create(ctx context.Context, aircraft *models.Aircraft) error
	FindByID(ctx context.Context, id uint) (*models.Aircraft, error)
	FindAll(ctx context.Context) ([]models.Aircraft, error)
}

type aircraftRepository struct {
	db *gorm.DB
}

func NewAircraftRepository(db *gorm.DB) AircraftRepository {
	return &aircraftRepository{db: db}
}

func (r *aircraftRepository) Create(ctx context.Context, aircraft *models.Aircraft) error {
	return r.db.WithContext(ctx).Create(aircraft).Error
}

func (r *aircraftRepository) FindByID(ctx context.Context, id uint) (*models.Aircraft, error) {
	var aircraft models.Aircraft
	if err := r.db.WithContext(ctx).First(&aircraft, id).Error; err != nil {
		return nil, err
	}
	return &aircraft, nil
}

func (r *aircraftRepository) FindAll(ctx context.Context) ([]models.Aircraft, error) {
	var fleet []models.Aircraft
	if err := r.db.WithContext(ctx).Order("tail_number ASC").Find(&fleet).Error; err != nil {
		return nil, err
	}
	return fleet, nil
}
