package repository

import (
	"context"

	"github.com/Eursukkul/airline-ops/internal/models"
	"gorm.io/gorm"
)

type PassengerRepository interface {
	Create(ctx context.Context, p *models.Passenger) error
	FindByID(ctx context.Context, id uint) (*models.Passenger, error)
	FindByCredentials(ctx context.Context, email, passportNumber string) (*models.Passenger, error)
}

type passengerRepository struct {
	db *gorm.DB
}

func NewPassengerRepository(db *gorm.DB) PassengerRepository {
	return &passengerRepository{db: db}
}

func (r *passengerRepository) Create(ctx context.Context, p *models.Passenger) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *passengerRepository) FindByID(ctx context.Context, id uint) (*models.Passenger, error) {
	var p models.Passenger
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *passengerRepository) FindByCredentials(ctx context.Context, email, passportNumber string) (*models.Passenger, error) {
	var p models.Passenger
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND passport_number = ?", email, passportNumber).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
