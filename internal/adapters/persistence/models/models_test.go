package models

import (
	"encoding/json"
	"testing"

	"cooploan/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLoanApplyRepayment(t *testing.T) {
	t.Run("reduces balance", func(t *testing.T) {
		loan := &Loan{RemainingBalance: dec("1000.00"), Status: domain.LoanActive}
		loan.ApplyRepayment(dec("400.00"))

		assert.True(t, loan.RemainingBalance.Equal(dec("600.00")), "got %s", loan.RemainingBalance)
		assert.Equal(t, domain.LoanActive, loan.Status)
	})

	t.Run("overpayment floors at zero and completes", func(t *testing.T) {
		loan := &Loan{RemainingBalance: dec("50.00"), Status: domain.LoanActive}
		loan.ApplyRepayment(dec("100.00"))

		assert.True(t, loan.RemainingBalance.IsZero())
		assert.Equal(t, domain.LoanCompleted, loan.Status)
	})

	t.Run("overdue loan paying off completes", func(t *testing.T) {
		loan := &Loan{RemainingBalance: dec("100.00"), Status: domain.LoanOverdue}
		loan.ApplyRepayment(dec("100.00"))

		assert.Equal(t, domain.LoanCompleted, loan.Status)
	})

	t.Run("pending loan never auto-completes", func(t *testing.T) {
		loan := &Loan{RemainingBalance: dec("100.00"), Status: domain.LoanPending}
		loan.ApplyRepayment(dec("100.00"))

		assert.Equal(t, domain.LoanPending, loan.Status)
	})
}

func TestJoinChain(t *testing.T) {
	orgID := uint(5)
	org := &Organization{ID: 5, Name: "North Cooperative"}
	member := &Member{
		ID:             2,
		Name:           "Bob",
		Email:          "bob@example.com",
		OrganizationID: &orgID,
		Organization:   org,
	}
	loan := &Loan{ID: 9, MemberID: 2, Member: member, Status: domain.LoanActive}
	repayment := &Repayment{ID: 1, LoanID: 9, Loan: loan, PaymentMonth: "2024-05", Amount: dec("888.49")}

	t.Run("loan embeds member with organization", func(t *testing.T) {
		resp := loan.ToResponse()
		require.NotNil(t, resp.Member)
		require.NotNil(t, resp.Member.Organization)
		assert.Equal(t, "North Cooperative", resp.Member.Organization.Name)
	})

	t.Run("repayment embeds the full loan chain", func(t *testing.T) {
		resp := repayment.ToResponse()
		require.NotNil(t, resp.Loan)
		require.NotNil(t, resp.Loan.Member)
		require.NotNil(t, resp.Loan.Member.Organization)
		assert.Equal(t, "North Cooperative", resp.Loan.Member.Organization.Name)
	})

	t.Run("missing relations stay nil", func(t *testing.T) {
		bare := (&Loan{ID: 9, MemberID: 2}).ToResponse()
		assert.Nil(t, bare.Member)
	})
}

func TestMemberSerializationHidesPassword(t *testing.T) {
	member := &Member{ID: 1, Name: "Alice", Email: "alice@example.com", Password: "bcrypt-hash"}

	raw, err := json.Marshal(member)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")

	raw, err = json.Marshal(member.ToResponse())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")
}

func TestLoanJSONUsesCamelCase(t *testing.T) {
	loan := &Loan{
		ID:               1,
		MemberID:         2,
		Amount:           dec("10000"),
		InterestRate:     dec("12"),
		TermMonths:       12,
		MonthlyPayment:   dec("888.49"),
		TotalAmount:      dec("10661.88"),
		RemainingBalance: dec("10000"),
		Status:           domain.LoanPending,
	}

	raw, err := json.Marshal(loan.ToResponse())
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{"memberId", "interestRate", "termMonths", "monthlyPayment", "totalAmount", "remainingBalance"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "member_id")
}
