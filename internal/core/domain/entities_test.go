package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoanStatusValid(t *testing.T) {
	for _, s := range []LoanStatus{LoanPending, LoanApproved, LoanActive, LoanCompleted, LoanOverdue, LoanRejected} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}

	assert.False(t, LoanStatus("cancelled").Valid())
	assert.False(t, LoanStatus("").Valid())
	assert.False(t, LoanStatus("Active").Valid())
}

func TestLoanStatusTerminal(t *testing.T) {
	assert.True(t, LoanCompleted.Terminal())
	assert.True(t, LoanRejected.Terminal())
	assert.False(t, LoanPending.Terminal())
	assert.False(t, LoanActive.Terminal())
	assert.False(t, LoanOverdue.Terminal())
}

func TestLoanStatusAcceptsRepayments(t *testing.T) {
	assert.True(t, LoanActive.AcceptsRepayments())
	assert.True(t, LoanOverdue.AcceptsRepayments())

	for _, s := range []LoanStatus{LoanPending, LoanApproved, LoanCompleted, LoanRejected} {
		assert.False(t, s.AcceptsRepayments(), "%s should not take repayments", s)
	}
}

func TestLoanStatusCanTransition(t *testing.T) {
	tests := []struct {
		from    LoanStatus
		to      LoanStatus
		allowed bool
	}{
		{LoanPending, LoanApproved, true},
		{LoanPending, LoanActive, true},
		{LoanPending, LoanRejected, true},
		{LoanPending, LoanCompleted, false},
		{LoanApproved, LoanActive, true},
		{LoanApproved, LoanRejected, true},
		{LoanApproved, LoanPending, false},
		{LoanActive, LoanCompleted, true},
		{LoanActive, LoanOverdue, true},
		{LoanActive, LoanRejected, false},
		{LoanOverdue, LoanActive, true},
		{LoanOverdue, LoanCompleted, true},
		{LoanOverdue, LoanRejected, false},
		{LoanCompleted, LoanActive, false},
		{LoanRejected, LoanActive, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestValidMonth(t *testing.T) {
	t.Run("accepts well-formed tokens", func(t *testing.T) {
		assert.True(t, ValidMonth("2024-05"))
		assert.True(t, ValidMonth("1999-12"))
		assert.True(t, ValidMonth("2026-01"))
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		assert.False(t, ValidMonth(""))
		assert.False(t, ValidMonth("2024-5"))
		assert.False(t, ValidMonth("2024-13"))
		assert.False(t, ValidMonth("2024-00"))
		assert.False(t, ValidMonth("2024/05"))
		assert.False(t, ValidMonth("2024-05-01"))
		assert.False(t, ValidMonth("may-2024"))
	})
}

func TestCurrentMonth(t *testing.T) {
	assert.True(t, ValidMonth(CurrentMonth()))
}
