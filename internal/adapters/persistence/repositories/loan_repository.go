package repositories

import (
	"context"
	"time"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/core/domain"

	"gorm.io/gorm"
)

// LoanRepository handles loan data access
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create creates a new loan
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID with its member and the member's organization
func (r *LoanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member.Organization").
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// List lists loans with pagination, newest first
func (r *LoanRepository) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Member.Organization").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// ListByMember lists loans belonging to a member
func (r *LoanRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member.Organization").
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListByOrganization lists loans whose owning member belongs to an organization
func (r *LoanRepository) ListByOrganization(ctx context.Context, organizationID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member.Organization").
		Joins("JOIN members ON members.id = loans.member_id").
		Where("members.organization_id = ?", organizationID).
		Order("loans.created_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListByStatus lists loans in a given status
func (r *LoanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member.Organization").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// Update updates a loan
func (r *LoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// Delete hard deletes a loan
func (r *LoanRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Loan{}, id).Error
}

// CountByMember counts loans referencing a member
func (r *LoanRepository) CountByMember(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}

// MarkOverdue flags active loans that started before the given month
// and have no repayment recorded for that month. Returns the number of
// loans flagged.
func (r *LoanRepository) MarkOverdue(ctx context.Context, month string, monthStart time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ?", domain.LoanActive).
		Where("start_date IS NOT NULL AND start_date < ?", monthStart).
		Where("NOT EXISTS (SELECT 1 FROM repayments WHERE repayments.loan_id = loans.id AND repayments.payment_month = ?)", month).
		Update("status", domain.LoanOverdue)
	return result.RowsAffected, result.Error
}

// ReactivateCurrent moves overdue loans that now have a repayment for
// the given month back to active.
func (r *LoanRepository) ReactivateCurrent(ctx context.Context, month string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ?", domain.LoanOverdue).
		Where("EXISTS (SELECT 1 FROM repayments WHERE repayments.loan_id = loans.id AND repayments.payment_month = ?)", month).
		Update("status", domain.LoanActive)
	return result.RowsAffected, result.Error
}
