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

// Repayment errors
var (
	ErrRepaymentNotFound  = errors.New("repayment not found")
	ErrDuplicateRepayment = errors.New("repayment already recorded for this month")
	ErrLoanNotRepayable   = errors.New("loan is not accepting repayments")
	ErrInvalidMonth       = errors.New("invalid month token, expected YYYY-MM")
	ErrInvalidAmount      = errors.New("amount must be positive")
)

// RepaymentService handles repayment business logic
type RepaymentService struct {
	repaymentRepo *repositories.RepaymentRepository
	loanRepo      *repositories.LoanRepository
}

// NewRepaymentService creates a new repayment service
func NewRepaymentService(
	repaymentRepo *repositories.RepaymentRepository,
	loanRepo *repositories.LoanRepository,
) *RepaymentService {
	return &RepaymentService{
		repaymentRepo: repaymentRepo,
		loanRepo:      loanRepo,
	}
}

// RecordRepaymentInput represents repayment input
type RecordRepaymentInput struct {
	LoanID       uint            `json:"loanId" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	PaymentMonth string          `json:"paymentMonth" validate:"required"`
}

// Record records a repayment against a loan and reduces its balance.
// At most one repayment is accepted per (loan, payment month).
func (s *RepaymentService) Record(ctx context.Context, input *RecordRepaymentInput) (*models.RepaymentResponse, error) {
	// 1. Validate input
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if !domain.ValidMonth(input.PaymentMonth) {
		return nil, ErrInvalidMonth
	}

	// 2. Validate loan
	loan, err := s.loanRepo.GetByID(ctx, input.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if !loan.Status.AcceptsRepayments() {
		return nil, ErrLoanNotRepayable
	}

	// 3. Reject duplicate month
	exists, err := s.repaymentRepo.ExistsForMonth(ctx, input.LoanID, input.PaymentMonth)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRepayment
	}

	// 4. Apply atomically: insert repayment, reduce balance, complete
	// the loan if the balance reaches zero
	repayment := &models.Repayment{
		LoanID:       input.LoanID,
		Amount:       input.Amount.Round(2),
		PaymentMonth: input.PaymentMonth,
	}

	if _, err := s.repaymentRepo.Apply(ctx, repayment); err != nil {
		// A concurrent insert for the same month loses the race on the
		// composite unique index rather than on the check above.
		if duplicateKey(err) {
			return nil, ErrDuplicateRepayment
		}
		return nil, err
	}

	created, err := s.repaymentRepo.GetByID(ctx, repayment.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Repayment recorded: loan %d, month %s, amount %s", created.LoanID, created.PaymentMonth, created.Amount)
	return created.ToResponse(), nil
}

// GetByID gets a repayment with its loan chain
func (s *RepaymentService) GetByID(ctx context.Context, id uint) (*models.RepaymentResponse, error) {
	repayment, err := s.repaymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepaymentNotFound
		}
		return nil, err
	}
	return repayment.ToResponse(), nil
}

// List lists repayments with pagination
func (s *RepaymentService) List(ctx context.Context, offset, limit int) ([]*models.RepaymentResponse, int64, error) {
	repayments, total, err := s.repaymentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return repaymentResponses(repayments), total, nil
}

// ListByLoan lists repayments of a loan
func (s *RepaymentService) ListByLoan(ctx context.Context, loanID uint) ([]*models.RepaymentResponse, error) {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	repayments, err := s.repaymentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return repaymentResponses(repayments), nil
}

// ListByMember lists repayments across all of a member's loans
func (s *RepaymentService) ListByMember(ctx context.Context, memberID uint) ([]*models.RepaymentResponse, error) {
	repayments, err := s.repaymentRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return repaymentResponses(repayments), nil
}

func repaymentResponses(repayments []*models.Repayment) []*models.RepaymentResponse {
	responses := make([]*models.RepaymentResponse, len(repayments))
	for i, r := range repayments {
		responses[i] = r.ToResponse()
	}
	return responses
}

// duplicateKey reports whether err is the translated unique-index
// violation raised by the composite (owner, month) indexes.
func duplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
