package repositories

import (
	"context"

	"cooploan/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by ID with its organization
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Preload("Organization").
		First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByEmail gets a member by email with its organization
func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("email = ?", email).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List lists members with pagination
func (r *memberRepository) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Organization").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&members).Error

	return members, total, err
}

// ListByOrganization lists members of an organization
func (r *memberRepository) ListByOrganization(ctx context.Context, organizationID uint) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("organization_id = ?", organizationID).
		Order("id").
		Find(&members).Error
	return members, err
}

// Update updates a member
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete hard deletes a member
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Member{}, id).Error
}

// ExistsByEmail checks if email is already registered
func (r *memberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// CountByOrganization counts members referencing an organization
func (r *memberRepository) CountByOrganization(ctx context.Context, organizationID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}

// CountActive counts active members
func (r *memberRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

// ListActive lists all active members
func (r *memberRepository) ListActive(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&members).Error
	return members, err
}
