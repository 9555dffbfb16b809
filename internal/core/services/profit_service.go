package services

import (
	"context"
	"errors"
	"log"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/adapters/persistence/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profit errors
var (
	ErrProfitNotFound  = errors.New("profit record not found")
	ErrDuplicateYear   = errors.New("profit record already exists for this year")
	ErrInvalidProfit   = errors.New("invalid profit figures")
	ErrInvalidYear     = errors.New("invalid year")
	ErrNoActiveMembers = errors.New("no active members to distribute to")
)

// ProfitService handles annual profit business logic
type ProfitService struct {
	profitRepo *repositories.ProfitRepository
	memberRepo repositories.MemberRepository
}

// NewProfitService creates a new profit service
func NewProfitService(
	profitRepo *repositories.ProfitRepository,
	memberRepo repositories.MemberRepository,
) *ProfitService {
	return &ProfitService{
		profitRepo: profitRepo,
		memberRepo: memberRepo,
	}
}

// CreateProfitInput represents profit record input
type CreateProfitInput struct {
	TotalProfit            decimal.Decimal `json:"totalProfit" validate:"required"`
	FixedPercent           decimal.Decimal `json:"fixedPercent" validate:"required"`
	SharedPercentPerMember decimal.Decimal `json:"sharedPercentPerMember" validate:"required"`
	Year                   int             `json:"year" validate:"required"`
}

// MemberShare represents one member's cut of a yearly distribution
type MemberShare struct {
	MemberID uint            `json:"memberId"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Amount   decimal.Decimal `json:"amount"`
}

// Distribution represents the computed payout plan for a year
type Distribution struct {
	Year            int             `json:"year"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	FixedAmount     decimal.Decimal `json:"fixedAmount"`
	PerMemberAmount decimal.Decimal `json:"perMemberAmount"`
	MemberCount     int             `json:"memberCount"`
	Shares          []MemberShare   `json:"shares"`
}

// Create records the cooperative's profit for a year. One record per
// year is accepted.
func (s *ProfitService) Create(ctx context.Context, input *CreateProfitInput) (*models.Profit, error) {
	if input.TotalProfit.IsNegative() {
		return nil, ErrInvalidProfit
	}
	if !validPercent(input.FixedPercent) || !validPercent(input.SharedPercentPerMember) {
		return nil, ErrInvalidProfit
	}
	if input.Year < 2000 || input.Year > 2200 {
		return nil, ErrInvalidYear
	}

	exists, err := s.profitRepo.ExistsForYear(ctx, input.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateYear
	}

	profit := &models.Profit{
		TotalProfit:            input.TotalProfit.Round(2),
		FixedPercent:           input.FixedPercent,
		SharedPercentPerMember: input.SharedPercentPerMember,
		Year:                   input.Year,
	}

	if err := s.profitRepo.Create(ctx, profit); err != nil {
		return nil, err
	}

	log.Printf("✅ Profit recorded for %d: %s", profit.Year, profit.TotalProfit)
	return profit, nil
}

// GetByYear gets the profit record for a year
func (s *ProfitService) GetByYear(ctx context.Context, year int) (*models.Profit, error) {
	profit, err := s.profitRepo.GetByYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfitNotFound
		}
		return nil, err
	}
	return profit, nil
}

// List lists all profit records, newest year first
func (s *ProfitService) List(ctx context.Context) ([]*models.Profit, error) {
	return s.profitRepo.List(ctx)
}

// Distribute computes the payout plan for a year: a fixed reserve cut
// plus an equal per-member share for every active member. The plan is
// computed, not persisted.
func (s *ProfitService) Distribute(ctx context.Context, year int) (*Distribution, error) {
	profit, err := s.GetByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrNoActiveMembers
	}

	hundred := decimal.NewFromInt(100)
	fixedAmount := profit.TotalProfit.Mul(profit.FixedPercent).Div(hundred).Round(2)
	perMember := profit.TotalProfit.Mul(profit.SharedPercentPerMember).Div(hundred).Round(2)

	shares := make([]MemberShare, len(members))
	for i, m := range members {
		shares[i] = MemberShare{
			MemberID: m.ID,
			Name:     m.Name,
			Email:    m.Email,
			Amount:   perMember,
		}
	}

	return &Distribution{
		Year:            year,
		TotalProfit:     profit.TotalProfit,
		FixedAmount:     fixedAmount,
		PerMemberAmount: perMember,
		MemberCount:     len(members),
		Shares:          shares,
	}, nil
}

// validPercent reports whether p is a usable percentage, 0 to 100.
func validPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(decimal.NewFromInt(100))
}
