package services

import (
	"context"
	"time"

	"cooploan/internal/adapters/persistence/repositories"
	"cooploan/internal/core/domain"

	"github.com/shopspring/decimal"
)

// StatisticsService computes the dashboard aggregates
type StatisticsService struct {
	statsRepo *repositories.StatisticsRepository
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(statsRepo *repositories.StatisticsRepository) *StatisticsService {
	return &StatisticsService{statsRepo: statsRepo}
}

// Statistics represents the dashboard snapshot
type Statistics struct {
	TotalOrganizations  int64           `json:"totalOrganizations"`
	TotalMembers        int64           `json:"totalMembers"`
	ActiveLoans         int64           `json:"activeLoans"`
	PendingApplications int64           `json:"pendingApplications"`
	ActiveLoanAmount    decimal.Decimal `json:"activeLoanAmount"`
	TotalContributions  decimal.Decimal `json:"totalContributions"`
	TotalProfit         decimal.Decimal `json:"totalProfit"`
	OverduePayments     int64           `json:"overduePayments"`
}

// Get computes the dashboard snapshot. All counters are derived from
// current table state; two calls without a mutation in between return
// identical results.
func (s *StatisticsService) Get(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}
	var err error

	if stats.TotalOrganizations, err = s.statsRepo.CountOrganizations(ctx); err != nil {
		return nil, err
	}
	if stats.TotalMembers, err = s.statsRepo.CountActiveMembers(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveLoans, err = s.statsRepo.CountLoansByStatus(ctx, domain.LoanActive); err != nil {
		return nil, err
	}
	if stats.PendingApplications, err = s.statsRepo.CountLoansByStatus(ctx, domain.LoanPending); err != nil {
		return nil, err
	}
	if stats.ActiveLoanAmount, err = s.statsRepo.SumActiveLoanBalance(ctx); err != nil {
		return nil, err
	}
	if stats.TotalContributions, err = s.statsRepo.SumContributions(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProfit, err = s.statsRepo.SumTotalProfit(ctx); err != nil {
		return nil, err
	}

	month, monthStart := currentMonthWindow()
	if stats.OverduePayments, err = s.statsRepo.CountOverduePayments(ctx, month, monthStart); err != nil {
		return nil, err
	}

	return stats, nil
}

// currentMonthWindow returns the current month token and the instant
// the month began.
func currentMonthWindow() (string, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return now.Format(domain.MonthFormat), start
}
