package repositories

import (
	"context"

	"cooploan/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ProfitRepository handles profit record data access
type ProfitRepository struct {
	db *gorm.DB
}

// NewProfitRepository creates a new profit repository
func NewProfitRepository(db *gorm.DB) *ProfitRepository {
	return &ProfitRepository{db: db}
}

// Create creates a new profit record
func (r *ProfitRepository) Create(ctx context.Context, profit *models.Profit) error {
	return r.db.WithContext(ctx).Create(profit).Error
}

// GetByID gets a profit record by ID
func (r *ProfitRepository) GetByID(ctx context.Context, id uint) (*models.Profit, error) {
	var profit models.Profit
	err := r.db.WithContext(ctx).First(&profit, id).Error
	if err != nil {
		return nil, err
	}
	return &profit, nil
}

// GetByYear gets the profit record for a year
func (r *ProfitRepository) GetByYear(ctx context.Context, year int) (*models.Profit, error) {
	var profit models.Profit
	err := r.db.WithContext(ctx).Where("year = ?", year).First(&profit).Error
	if err != nil {
		return nil, err
	}
	return &profit, nil
}

// List lists profit records, newest year first
func (r *ProfitRepository) List(ctx context.Context) ([]*models.Profit, error) {
	var profits []*models.Profit
	err := r.db.WithContext(ctx).Order("year DESC").Find(&profits).Error
	return profits, err
}

// ExistsForYear checks whether a profit record exists for a year
func (r *ProfitRepository) ExistsForYear(ctx context.Context, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profit{}).
		Where("year = ?", year).
		Count(&count).Error
	return count > 0, err
}
