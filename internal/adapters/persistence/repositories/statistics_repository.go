package repositories

import (
	"context"
	"time"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatisticsRepository runs the dashboard aggregate queries
type StatisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository creates a new statistics repository
func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// CountOrganizations counts all organizations
func (r *StatisticsRepository) CountOrganizations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Organization{}).Count(&count).Error
	return count, err
}

// CountActiveMembers counts members flagged active
func (r *StatisticsRepository) CountActiveMembers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

// CountLoansByStatus counts loans in a status
func (r *StatisticsRepository) CountLoansByStatus(ctx context.Context, status domain.LoanStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SumActiveLoanBalance sums the remaining balance of active loans
func (r *StatisticsRepository) SumActiveLoanBalance(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ?", domain.LoanActive).
		Select("COALESCE(SUM(remaining_balance), 0)"))
}

// SumTotalProfit sums totalProfit over all profit records
func (r *StatisticsRepository) SumTotalProfit(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(r.db.WithContext(ctx).Model(&models.Profit{}).
		Select("COALESCE(SUM(total_profit), 0)"))
}

// SumContributions sums all monthly contributions
func (r *StatisticsRepository) SumContributions(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(r.db.WithContext(ctx).Model(&models.MonthlyContribution{}).
		Select("COALESCE(SUM(amount_paid), 0)"))
}

// CountOverduePayments counts active or overdue loans that started
// before the given month and have no repayment recorded for it.
func (r *StatisticsRepository) CountOverduePayments(ctx context.Context, month string, monthStart time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status IN ?", []domain.LoanStatus{domain.LoanActive, domain.LoanOverdue}).
		Where("start_date IS NOT NULL AND start_date < ?", monthStart).
		Where("NOT EXISTS (SELECT 1 FROM repayments WHERE repayments.loan_id = loans.id AND repayments.payment_month = ?)", month).
		Count(&count).Error
	return count, err
}

func sumDecimal(query *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := query.Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
