package domain

import "time"

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	LoanPending   LoanStatus = "pending"
	LoanApproved  LoanStatus = "approved"
	LoanActive    LoanStatus = "active"
	LoanCompleted LoanStatus = "completed"
	LoanOverdue   LoanStatus = "overdue"
	LoanRejected  LoanStatus = "rejected"
)

// Valid reports whether s is a known loan status
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanPending, LoanApproved, LoanActive, LoanCompleted, LoanOverdue, LoanRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s
func (s LoanStatus) Terminal() bool {
	return s == LoanCompleted || s == LoanRejected
}

// CanTransition reports whether a loan may move from s to target.
// pending → approved/active/rejected; approved → active/rejected;
// active → completed/overdue; overdue → active/completed.
func (s LoanStatus) CanTransition(target LoanStatus) bool {
	switch s {
	case LoanPending:
		return target == LoanApproved || target == LoanActive || target == LoanRejected
	case LoanApproved:
		return target == LoanActive || target == LoanRejected
	case LoanActive:
		return target == LoanCompleted || target == LoanOverdue
	case LoanOverdue:
		return target == LoanActive || target == LoanCompleted
	}
	return false
}

// AcceptsRepayments reports whether a loan in status s may take a
// repayment. Only disbursed loans carry a balance to reduce, so the
// gate admits active and overdue loans.
func (s LoanStatus) AcceptsRepayments() bool {
	return s == LoanActive || s == LoanOverdue
}

// MonthFormat is the layout for payment month tokens (YYYY-MM)
const MonthFormat = "2006-01"

// ValidMonth reports whether token is a well-formed YYYY-MM month token
func ValidMonth(token string) bool {
	if len(token) != 7 {
		return false
	}
	_, err := time.Parse(MonthFormat, token)
	return err == nil
}

// CurrentMonth returns the current month token
func CurrentMonth() string {
	return time.Now().Format(MonthFormat)
}
