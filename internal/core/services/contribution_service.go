package services

import (
	"context"
	"errors"
	"log"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/adapters/persistence/repositories"
	"cooploan/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contribution errors
var (
	ErrContributionNotFound  = errors.New("contribution not found")
	ErrDuplicateContribution = errors.New("contribution already recorded for this month")
)

// ContributionService handles monthly contribution business logic
type ContributionService struct {
	contributionRepo *repositories.ContributionRepository
	memberRepo       repositories.MemberRepository
}

// NewContributionService creates a new contribution service
func NewContributionService(
	contributionRepo *repositories.ContributionRepository,
	memberRepo repositories.MemberRepository,
) *ContributionService {
	return &ContributionService{
		contributionRepo: contributionRepo,
		memberRepo:       memberRepo,
	}
}

// RecordContributionInput represents contribution input
type RecordContributionInput struct {
	MemberID   uint            `json:"memberId" validate:"required"`
	Month      string          `json:"month" validate:"required"`
	AmountPaid decimal.Decimal `json:"amountPaid" validate:"required"`
}

// Record records a monthly contribution for a member. At most one
// contribution is accepted per (member, month).
func (s *ContributionService) Record(ctx context.Context, input *RecordContributionInput) (*models.MonthlyContribution, error) {
	// 1. Validate input
	if input.AmountPaid.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if !domain.ValidMonth(input.Month) {
		return nil, ErrInvalidMonth
	}

	// 2. Validate member
	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	// 3. Reject duplicate month
	exists, err := s.contributionRepo.ExistsForMonth(ctx, input.MemberID, input.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateContribution
	}

	// 4. Record
	contribution := &models.MonthlyContribution{
		MemberID:   input.MemberID,
		Month:      input.Month,
		AmountPaid: input.AmountPaid.Round(2),
	}

	if err := s.contributionRepo.Create(ctx, contribution); err != nil {
		if duplicateKey(err) {
			return nil, ErrDuplicateContribution
		}
		return nil, err
	}

	created, err := s.contributionRepo.GetByID(ctx, contribution.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Contribution recorded: member %d, month %s, amount %s", created.MemberID, created.Month, created.AmountPaid)
	return created, nil
}

// GetByID gets a contribution with its member
func (s *ContributionService) GetByID(ctx context.Context, id uint) (*models.MonthlyContribution, error) {
	contribution, err := s.contributionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContributionNotFound
		}
		return nil, err
	}
	return contribution, nil
}

// List lists contributions with pagination
func (s *ContributionService) List(ctx context.Context, offset, limit int) ([]*models.MonthlyContribution, int64, error) {
	return s.contributionRepo.List(ctx, offset, limit)
}

// ListByMember lists contributions of a member
func (s *ContributionService) ListByMember(ctx context.Context, memberID uint) ([]*models.MonthlyContribution, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.contributionRepo.ListByMember(ctx, memberID)
}

// ListByMonth lists contributions recorded for a month
func (s *ContributionService) ListByMonth(ctx context.Context, month string) ([]*models.MonthlyContribution, error) {
	if !domain.ValidMonth(month) {
		return nil, ErrInvalidMonth
	}
	return s.contributionRepo.ListByMonth(ctx, month)
}
