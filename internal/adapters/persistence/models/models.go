package models

import (
	"time"

	"cooploan/internal/core/domain"
	"cooploan/internal/pkg/finance"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Core tables
// ============================================================

// Organization represents organizations table
type Organization struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedBy uint      `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Organization) TableName() string {
	return "organizations"
}

// Member represents members table. Members double as login accounts;
// the password column holds a bcrypt hash and is never serialized.
type Member struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	OrganizationID *uint     `gorm:"index" json:"organizationId"`
	IsAdmin        bool      `gorm:"default:false" json:"isAdmin"`
	CanAddMembers  bool      `gorm:"default:false" json:"canAddMembers"`
	IsSuperAdmin   bool      `gorm:"default:false" json:"isSuperAdmin"`
	IsActive       bool      `gorm:"default:true" json:"isActive"`
	JoinDate       time.Time `gorm:"autoCreateTime" json:"joinDate"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse DTO — member with its organization embedded
type MemberResponse struct {
	ID             uint          `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	OrganizationID *uint         `json:"organizationId"`
	IsAdmin        bool          `json:"isAdmin"`
	CanAddMembers  bool          `json:"canAddMembers"`
	IsSuperAdmin   bool          `json:"isSuperAdmin"`
	IsActive       bool          `json:"isActive"`
	JoinDate       time.Time     `json:"joinDate"`
	Organization   *Organization `json:"organization,omitempty"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		OrganizationID: m.OrganizationID,
		IsAdmin:        m.IsAdmin,
		CanAddMembers:  m.CanAddMembers,
		IsSuperAdmin:   m.IsSuperAdmin,
		IsActive:       m.IsActive,
		JoinDate:       m.JoinDate,
		Organization:   m.Organization,
	}
}

// Loan represents loans table. Monetary columns are fixed-point decimals.
type Loan struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	MemberID         uint              `gorm:"not null;index" json:"memberId"`
	Amount           decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"amount"`
	InterestRate     decimal.Decimal   `gorm:"type:decimal(5,2);not null" json:"interestRate"`
	TermMonths       int               `gorm:"not null" json:"termMonths"`
	MonthlyPayment   decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"monthlyPayment"`
	TotalAmount      decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	RemainingBalance decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"remainingBalance"`
	Purpose          string            `gorm:"type:text;not null" json:"purpose"`
	Status           domain.LoanStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	StartDate        *time.Time        `json:"startDate"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"createdAt"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// ApplyRepayment reduces the remaining balance by amount, flooring at zero.
// An active or overdue loan whose balance reaches zero becomes completed.
func (l *Loan) ApplyRepayment(amount decimal.Decimal) {
	l.RemainingBalance = finance.ApplyRepayment(l.RemainingBalance, amount)
	if l.RemainingBalance.IsZero() && (l.Status == domain.LoanActive || l.Status == domain.LoanOverdue) {
		l.Status = domain.LoanCompleted
	}
}

// LoanResponse DTO — loan with its member (and the member's organization)
type LoanResponse struct {
	ID               uint              `json:"id"`
	MemberID         uint              `json:"memberId"`
	Amount           decimal.Decimal   `json:"amount"`
	InterestRate     decimal.Decimal   `json:"interestRate"`
	TermMonths       int               `json:"termMonths"`
	MonthlyPayment   decimal.Decimal   `json:"monthlyPayment"`
	TotalAmount      decimal.Decimal   `json:"totalAmount"`
	RemainingBalance decimal.Decimal   `json:"remainingBalance"`
	Purpose          string            `json:"purpose"`
	Status           domain.LoanStatus `json:"status"`
	StartDate        *time.Time        `json:"startDate"`
	CreatedAt        time.Time         `json:"createdAt"`
	Member           *MemberResponse   `json:"member,omitempty"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:               l.ID,
		MemberID:         l.MemberID,
		Amount:           l.Amount,
		InterestRate:     l.InterestRate,
		TermMonths:       l.TermMonths,
		MonthlyPayment:   l.MonthlyPayment,
		TotalAmount:      l.TotalAmount,
		RemainingBalance: l.RemainingBalance,
		Purpose:          l.Purpose,
		Status:           l.Status,
		StartDate:        l.StartDate,
		CreatedAt:        l.CreatedAt,
	}

	if l.Member != nil {
		resp.Member = l.Member.ToResponse()
	}

	return resp
}

// Repayment represents repayments table.
// At most one repayment per (loan, payment month).
type Repayment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	LoanID       uint            `gorm:"not null;uniqueIndex:idx_loan_month" json:"loanId"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMonth string          `gorm:"size:7;not null;uniqueIndex:idx_loan_month" json:"paymentMonth"`
	PaidAt       time.Time       `gorm:"autoCreateTime" json:"paidAt"`

	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

func (Repayment) TableName() string {
	return "repayments"
}

// RepaymentResponse DTO — repayment with its loan (and the loan's member)
type RepaymentResponse struct {
	ID           uint            `json:"id"`
	LoanID       uint            `json:"loanId"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentMonth string          `json:"paymentMonth"`
	PaidAt       time.Time       `json:"paidAt"`
	Loan         *LoanResponse   `json:"loan,omitempty"`
}

func (r *Repayment) ToResponse() *RepaymentResponse {
	resp := &RepaymentResponse{
		ID:           r.ID,
		LoanID:       r.LoanID,
		Amount:       r.Amount,
		PaymentMonth: r.PaymentMonth,
		PaidAt:       r.PaidAt,
	}

	if r.Loan != nil {
		resp.Loan = r.Loan.ToResponse()
	}

	return resp
}

// MonthlyContribution represents monthly_contributions table.
// One contribution per (member, month).
type MonthlyContribution struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	MemberID   uint            `gorm:"not null;uniqueIndex:idx_member_month" json:"memberId"`
	Month      string          `gorm:"size:7;not null;uniqueIndex:idx_member_month" json:"month"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amountPaid"`
	PaidAt     time.Time       `gorm:"autoCreateTime" json:"paidAt"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (MonthlyContribution) TableName() string {
	return "monthly_contributions"
}

// Profit represents profits table. One record per year.
type Profit struct {
	ID                     uint            `gorm:"primaryKey" json:"id"`
	TotalProfit            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalProfit"`
	FixedPercent           decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"fixedPercent"`
	SharedPercentPerMember decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"sharedPercentPerMember"`
	Year                   int             `gorm:"not null;uniqueIndex" json:"year"`
	CalculationDate        time.Time       `gorm:"autoCreateTime" json:"calculationDate"`
}

func (Profit) TableName() string {
	return "profits"
}

// ============================================================
// Auth tables
// ============================================================

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	MemberID  uint       `gorm:"index;not null" json:"memberId"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `gorm:"index" json:"revokedAt"`
	Member    Member     `gorm:"foreignKey:MemberID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Organization{},
		&Member{},
		&Loan{},
		&Repayment{},
		&MonthlyContribution{},
		&Profit{},
		&RefreshToken{},
	)
}
