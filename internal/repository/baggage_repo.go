package repository

import (
	"context"

	"github.com/Eursukkul/airline-ops/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BaggageRepository interface {
	UpsertByTicket(ctx context.Context, tx *gorm.DB, baggage *models.Baggage) (*models.Baggage, error)
	FindByTag(ctx context.Context, tag string) (*models.Baggage, error)
	TagExists(ctx context.Context, tx *gorm.DB, tag string) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status models.BaggageStatus) error
	GetDB() *gorm.DB
}

type baggageRepository struct {
	db *gorm.DB
}

func NewBaggageRepository(db *gorm.DB) BaggageRepository {
	return &baggageRepository{db: db}
}

func (r *baggageRepository) GetDB() *gorm.DB {
	return r.db
}

// UpsertByTicket inserts the bag or, when the ticket already has one, overwrites
// weight, status, fee and tag in a single statement. Returns the stored row.
func (r *baggageRepository) UpsertByTicket(ctx context.Context, tx *gorm.DB, baggage *models.Baggage) (*models.Baggage, error) {
	err := tx.WithContext(ctx).
		Omit("Ticket").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticket_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight", "status", "extra_fee", "tag_number", "updated_at"}),
		}).
		Create(baggage).Error
	if err != nil {
		return nil, err
	}

	var stored models.Baggage
	if err := tx.WithContext(ctx).Where("ticket_id = ?", baggage.TicketID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *baggageRepository) FindByTag(ctx context.Context, tag string) (*models.Baggage, error) {
	var baggage models.Baggage
	err := r.db.WithContext(ctx).
		Preload("Ticket").
		Preload("Ticket.Passenger").
		Preload("Ticket.Flight").
		Preload("Ticket.Flight.Origin").
		Preload("Ticket.Flight.Destination").
		Where("tag_number = ?", tag).
		First(&baggage).Error
	if err != nil {
		return nil, err
	}
	return &baggage, nil
}

func (r *baggageRepository) TagExists(ctx context.Context, tx *gorm.DB, tag string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Baggage{}).
		Where("tag_number = ?", tag).
		Count(&count).Error
	return count > 0, err
}

func (r *baggageRepository) UpdateStatus(ctx context.Context, id uint, status models.BaggageStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Baggage{}).
		Where("id = ?", id).
		Update("status", status).Error
}
