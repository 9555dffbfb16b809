package services

import (
	"context"
	"errors"
	"log"
	"time"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/adapters/persistence/repositories"
	"cooploan/internal/core/domain"
	"cooploan/internal/pkg/finance"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan errors
var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrInvalidLoanStatus = errors.New("invalid loan status")
	ErrInvalidTransition = errors.New("loan status transition not allowed")
	ErrLoanHasRepayments = errors.New("loan still has repayments")
	ErrLoanNotEditable   = errors.New("only pending loans can be edited")
	ErrInvalidLoanTerms  = errors.New("invalid loan terms")
)

// statusUpdateInputs is the set of statuses accepted on the status
// endpoint. completed and overdue are system-managed.
var statusUpdateInputs = map[domain.LoanStatus]bool{
	domain.LoanApproved: true,
	domain.LoanRejected: true,
	domain.LoanActive:   true,
}

// LoanService handles loan business logic
type LoanService struct {
	loanRepo      *repositories.LoanRepository
	memberRepo    repositories.MemberRepository
	repaymentRepo *repositories.RepaymentRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo *repositories.LoanRepository,
	memberRepo repositories.MemberRepository,
	repaymentRepo *repositories.RepaymentRepository,
) *LoanService {
	return &LoanService{
		loanRepo:      loanRepo,
		memberRepo:    memberRepo,
		repaymentRepo: repaymentRepo,
	}
}

// CreateLoanInput represents loan application input
type CreateLoanInput struct {
	MemberID     uint            `json:"memberId" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths" validate:"required,min=1"`
	Purpose      string          `json:"purpose" validate:"required"`
}

// UpdateLoanInput represents loan terms update input. Only pending
// loans may be edited; derived fields are recomputed.
type UpdateLoanInput struct {
	Amount       *decimal.Decimal `json:"amount"`
	InterestRate *decimal.Decimal `json:"interestRate"`
	TermMonths   *int             `json:"termMonths"`
	Purpose      *string          `json:"purpose"`
}

// UpdateStatusInput represents a status change request
type UpdateStatusInput struct {
	Status domain.LoanStatus `json:"status" validate:"required"`
}

// Create creates a loan application with derived amortization fields
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput) (*models.LoanResponse, error) {
	// 1. Validate terms
	if input.Amount.LessThanOrEqual(decimal.Zero) || input.TermMonths <= 0 || input.InterestRate.IsNegative() {
		return nil, ErrInvalidLoanTerms
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

	// 3. Compute derived fields
	monthlyPayment := finance.MonthlyPayment(input.Amount, input.InterestRate, input.TermMonths)
	totalAmount := finance.TotalRepayable(input.Amount, monthlyPayment, input.TermMonths)

	loan := &models.Loan{
		MemberID:         input.MemberID,
		Amount:           input.Amount.Round(2),
		InterestRate:     input.InterestRate,
		TermMonths:       input.TermMonths,
		MonthlyPayment:   monthlyPayment,
		TotalAmount:      totalAmount,
		RemainingBalance: input.Amount.Round(2),
		Purpose:          input.Purpose,
		Status:           domain.LoanPending,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	created, err := s.loanRepo.GetByID(ctx, loan.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Loan application created: ID %d (member %d, amount %s)", created.ID, created.MemberID, created.Amount)
	return created.ToResponse(), nil
}

// GetByID gets a loan with its member and organization
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.LoanResponse, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return loan.ToResponse(), nil
}

// List lists loans with pagination
func (s *LoanService) List(ctx context.Context, offset, limit int) ([]*models.LoanResponse, int64, error) {
	loans, total, err := s.loanRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return loanResponses(loans), total, nil
}

// ListByMember lists loans belonging to a member
func (s *LoanService) ListByMember(ctx context.Context, memberID uint) ([]*models.LoanResponse, error) {
	loans, err := s.loanRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return loanResponses(loans), nil
}

// ListByOrganization lists loans of members in an organization
func (s *LoanService) ListByOrganization(ctx context.Context, organizationID uint) ([]*models.LoanResponse, error) {
	loans, err := s.loanRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return loanResponses(loans), nil
}

// UpdateStatus applies an approval workflow transition. Moving a loan
// to active stamps its start date.
func (s *LoanService) UpdateStatus(ctx context.Context, id uint, input *UpdateStatusInput) (*models.LoanResponse, error) {
	if !statusUpdateInputs[input.Status] {
		return nil, ErrInvalidLoanStatus
	}

	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	if !loan.Status.CanTransition(input.Status) {
		return nil, ErrInvalidTransition
	}

	loan.Status = input.Status
	if input.Status == domain.LoanActive && loan.StartDate == nil {
		now := time.Now()
		loan.StartDate = &now
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan %d status changed to %s", loan.ID, loan.Status)
	return loan.ToResponse(), nil
}

// Update edits the terms of a pending loan and recomputes the derived
// amortization fields.
func (s *LoanService) Update(ctx context.Context, id uint, input *UpdateLoanInput) (*models.LoanResponse, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	if loan.Status != domain.LoanPending {
		return nil, ErrLoanNotEditable
	}

	if input.Amount != nil {
		loan.Amount = input.Amount.Round(2)
	}
	if input.InterestRate != nil {
		loan.InterestRate = *input.InterestRate
	}
	if input.TermMonths != nil {
		loan.TermMonths = *input.TermMonths
	}
	if input.Purpose != nil {
		loan.Purpose = *input.Purpose
	}

	if loan.Amount.LessThanOrEqual(decimal.Zero) || loan.TermMonths <= 0 || loan.InterestRate.IsNegative() {
		return nil, ErrInvalidLoanTerms
	}

	loan.MonthlyPayment = finance.MonthlyPayment(loan.Amount, loan.InterestRate, loan.TermMonths)
	loan.TotalAmount = finance.TotalRepayable(loan.Amount, loan.MonthlyPayment, loan.TermMonths)
	loan.RemainingBalance = loan.Amount

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	return loan.ToResponse(), nil
}

// Delete deletes a loan. Deletion is refused while repayments still
// reference it.
func (s *LoanService) Delete(ctx context.Context, id uint) error {
	if _, err := s.loanRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLoanNotFound
		}
		return err
	}

	count, err := s.repaymentRepo.CountByLoan(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrLoanHasRepayments
	}

	if err := s.loanRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Loan deleted: ID %d", id)
	return nil
}

func loanResponses(loans []*models.Loan) []*models.LoanResponse {
	responses := make([]*models.LoanResponse, len(loans))
	for i, l := range loans {
		responses[i] = l.ToResponse()
	}
	return responses
}
