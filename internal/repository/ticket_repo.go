package repository

import (
	"context"

	"github.com/Eursukkul/airline-ops/internal/models"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	FindByID(ctx context.Context, id uint) (*models.Ticket, error)
	FindByPNR(ctx context.Context, pnr string) (*models.Ticket, error)
	FindAll(ctx context.Context) ([]models.Ticket, error)
	TakenSeats(ctx context.Context, tx *gorm.DB, flightID uint) ([]string, error)
	PNRExists(ctx context.Context, tx *gorm.DB, pnr string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
	MarkCheckedIn(ctx context.Context, id uint) (int64, error)
	GetDB() *gorm.DB
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *ticketRepository) Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return tx.WithContext(ctx).Omit("Passenger", "Flight", "Baggage").Create(ticket).Error
}

func (r *ticketRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Passenger").
		Preload("Flight").
		Preload("Flight.Origin").
		Preload("Flight.Destination").
		Preload("Baggage")
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.withDetails(ctx).First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByPNR(ctx context.Context, pnr string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.withDetails(ctx).Where("pnr = ?", pnr).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindAll(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.withDetails(ctx).Order("id DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) TakenSeats(ctx context.Context, tx *gorm.DB, flightID uint) ([]string, error) {
	var seats []string
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("flight_id = ?", flightID).
		Pluck("seat_number", &seats).Error
	return seats, err
}

func (r *ticketRepository) PNRExists(ctx context.Context, tx *gorm.DB, pnr string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("pnr = ?", pnr).
		Count(&count).Error
	return count > 0, err
}

// Delete hard-deletes the ticket and its baggage; the affected row count of the
// ticket delete tells the caller whether it existed.
func (r *ticketRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	if err := tx.WithContext(ctx).Where("ticket_id = ?", id).Delete(&models.Baggage{}).Error; err != nil {
		return 0, err
	}
	result := tx.WithContext(ctx).Delete(&models.Ticket{}, id)
	return result.RowsAffected, result.Error
}

func (r *ticketRepository) MarkCheckedIn(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Update("is_checked_in", true)
	return result.RowsAffected, result.Error
}
