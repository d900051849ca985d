package repository

import (
	"context"

	"github.com/Eursukkul/airline-ops/internal/models"
	"gorm.io/gorm"
)

type PersonnelRepository interface {
	Create(ctx context.Context, p *models.Personnel) error
	FindAll(ctx context.Context, role *models.PersonnelRole) ([]models.Personnel, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Personnel, error)
}

type personnelRepository struct {
	db *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) PersonnelRepository {
	return &personnelRepository{db: db}
}

func (r *personnelRepository) Create(ctx context.Context, p *models.Personnel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *personnelRepository) FindAll(ctx context.Context, role *models.PersonnelRole) ([]models.Personnel, error) {
	var staff []models.Personnel
	q := r.db.WithContext(ctx)
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	if err := q.Order("last_name ASC, first_name ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *personnelRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Personnel, error) {
	var staff []models.Personnel
	if len(ids) == 0 {
		return staff, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}
