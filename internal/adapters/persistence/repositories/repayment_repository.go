package repositories

import (
	"context"

	"cooploan/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RepaymentRepository handles repayment data access
type RepaymentRepository struct {
	db *gorm.DB
}

// NewRepaymentRepository creates a new repayment repository
func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

// Apply records a repayment and updates the loan balance in a single
// transaction. The loan row is locked for the duration so concurrent
// repayments cannot both read the same balance.
func (r *RepaymentRepository) Apply(ctx context.Context, repayment *models.Repayment) (*models.Loan, error) {
	var loan models.Loan

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&loan, repayment.LoanID).Error; err != nil {
			return err
		}

		loan.ApplyRepayment(repayment.Amount)

		if err := tx.Create(repayment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Loan{}).
			Where("id = ?", loan.ID).
			Updates(map[string]interface{}{
				"remaining_balance": loan.RemainingBalance,
				"status":            loan.Status,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

// GetByID gets a repayment by ID with its loan and the loan's member
func (r *RepaymentRepository) GetByID(ctx context.Context, id uint) (*models.Repayment, error) {
	var repayment models.Repayment
	err := r.db.WithContext(ctx).
		Preload("Loan.Member.Organization").
		First(&repayment, id).Error
	if err != nil {
		return nil, err
	}
	return &repayment, nil
}

// List lists repayments with pagination, newest first
func (r *RepaymentRepository) List(ctx context.Context, offset, limit int) ([]*models.Repayment, int64, error) {
	var repayments []*models.Repayment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Repayment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Loan.Member.Organization").
		Order("paid_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&repayments).Error

	return repayments, total, err
}

// ListByLoan lists repayments of a loan, oldest first
func (r *RepaymentRepository) ListByLoan(ctx context.Context, loanID uint) ([]*models.Repayment, error) {
	var repayments []*models.Repayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_month").
		Find(&repayments).Error
	return repayments, err
}

// ListByMember lists repayments across all of a member's loans
func (r *RepaymentRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.Repayment, error) {
	var repayments []*models.Repayment
	err := r.db.WithContext(ctx).
		Preload("Loan").
		Joins("JOIN loans ON loans.id = repayments.loan_id").
		Where("loans.member_id = ?", memberID).
		Order("repayments.paid_at DESC").
		Find(&repayments).Error
	return repayments, err
}

// ExistsForMonth checks whether the loan already has a repayment for
// the given payment month.
func (r *RepaymentRepository) ExistsForMonth(ctx context.Context, loanID uint, month string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Repayment{}).
		Where("loan_id = ? AND payment_month = ?", loanID, month).
		Count(&count).Error
	return count > 0, err
}

// CountByLoan counts repayments referencing a loan
func (r *RepaymentRepository) CountByLoan(ctx context.Context, loanID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Repayment{}).
		Where("loan_id = ?", loanID).
		Count(&count).Error
	return count, err
}
