package repositories

import (
	"context"

	"cooploan/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ContributionRepository handles monthly contribution data access
type ContributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Create creates a new monthly contribution
func (r *ContributionRepository) Create(ctx context.Context, contribution *models.MonthlyContribution) error {
	return r.db.WithContext(ctx).Create(contribution).Error
}

// GetByID gets a contribution by ID with its member
func (r *ContributionRepository) GetByID(ctx context.Context, id uint) (*models.MonthlyContribution, error) {
	var contribution models.MonthlyContribution
	err := r.db.WithContext(ctx).
		Preload("Member.Organization").
		First(&contribution, id).Error
	if err != nil {
		return nil, err
	}
	return &contribution, nil
}

// List lists contributions with pagination, newest first
func (r *ContributionRepository) List(ctx context.Context, offset, limit int) ([]*models.MonthlyContribution, int64, error) {
	var contributions []*models.MonthlyContribution
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.MonthlyContribution{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Member.Organization").
		Order("paid_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&contributions).Error

	return contributions, total, err
}

// ListByMember lists contributions of a member, newest month first
func (r *ContributionRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.MonthlyContribution, error) {
	var contributions []*models.MonthlyContribution
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("month DESC").
		Find(&contributions).Error
	return contributions, err
}

// ListByMonth lists contributions recorded for a month
func (r *ContributionRepository) ListByMonth(ctx context.Context, month string) ([]*models.MonthlyContribution, error) {
	var contributions []*models.MonthlyContribution
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("month = ?", month).
		Find(&contributions).Error
	return contributions, err
}

// ExistsForMonth checks whether the member already contributed for
// the given month.
func (r *ContributionRepository) ExistsForMonth(ctx context.Context, memberID uint, month string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MonthlyContribution{}).
		Where("member_id = ? AND month = ?", memberID, month).
		Count(&count).Error
	return count > 0, err
}

// CountByMember counts contributions referencing a member
func (r *ContributionRepository) CountByMember(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MonthlyContribution{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}
