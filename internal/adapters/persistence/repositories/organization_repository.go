package repositories

import (
	"context"

	"cooploan/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// OrganizationRepository handles organization data access
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

// GetByID gets an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// List lists organizations with pagination
func (r *OrganizationRepository) List(ctx context.Context, offset, limit int) ([]*models.Organization, int64, error) {
	var orgs []*models.Organization
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Organization{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&orgs).Error

	return orgs, total, err
}

// Update updates an organization
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

// Delete hard deletes an organization
func (r *OrganizationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Organization{}, id).Error
}
