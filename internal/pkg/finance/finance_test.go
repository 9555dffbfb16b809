package finance

import (
	"testing"

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

func TestMonthlyRate(t *testing.T) {
	t.Run("12 percent annual is 1 percent monthly", func(t *testing.T) {
		r := MonthlyRate(dec("12"))
		assert.True(t, r.Equal(dec("0.01")), "got %s", r)
	})

	t.Run("zero stays zero", func(t *testing.T) {
		assert.True(t, MonthlyRate(decimal.Zero).IsZero())
	})
}

func TestMonthlyPayment(t *testing.T) {
	t.Run("standard amortization", func(t *testing.T) {
		// 10000 at 12% over 12 months
		m := MonthlyPayment(dec("10000"), dec("12"), 12)
		assert.True(t, m.Equal(dec("888.49")), "got %s", m)
	})

	t.Run("zero-rate loan divides principal evenly", func(t *testing.T) {
		m := MonthlyPayment(dec("1200"), decimal.Zero, 12)
		assert.True(t, m.Equal(dec("100.00")), "got %s", m)
	})

	t.Run("zero-rate loan rounds to cents", func(t *testing.T) {
		m := MonthlyPayment(dec("1000"), decimal.Zero, 3)
		assert.True(t, m.Equal(dec("333.33")), "got %s", m)
	})

	t.Run("single month term", func(t *testing.T) {
		m := MonthlyPayment(dec("500"), decimal.Zero, 1)
		assert.True(t, m.Equal(dec("500")), "got %s", m)
	})
}

func TestTotalRepayable(t *testing.T) {
	t.Run("total is payment times term", func(t *testing.T) {
		monthly := MonthlyPayment(dec("10000"), dec("12"), 12)
		total := TotalRepayable(dec("10000"), monthly, 12)
		assert.True(t, total.Equal(dec("10661.88")), "got %s", total)
	})

	t.Run("zero-rate total equals principal", func(t *testing.T) {
		monthly := MonthlyPayment(dec("1200"), decimal.Zero, 12)
		total := TotalRepayable(dec("1200"), monthly, 12)
		assert.True(t, total.Equal(dec("1200.00")), "got %s", total)
	})

	t.Run("total never drops below principal on uneven zero-rate split", func(t *testing.T) {
		// 1000/3 rounds to 333.33, M·n = 999.99
		monthly := MonthlyPayment(dec("1000"), decimal.Zero, 3)
		total := TotalRepayable(dec("1000"), monthly, 3)

		assert.True(t, total.Equal(dec("1000.00")), "got %s", total)
		assert.True(t, total.GreaterThanOrEqual(dec("1000")))
	})
}

func TestApplyRepayment(t *testing.T) {
	t.Run("reduces balance", func(t *testing.T) {
		next := ApplyRepayment(dec("1000.00"), dec("250.50"))
		assert.True(t, next.Equal(dec("749.50")), "got %s", next)
	})

	t.Run("overpayment floors at zero", func(t *testing.T) {
		next := ApplyRepayment(dec("50.00"), dec("100.00"))
		assert.True(t, next.IsZero(), "got %s", next)
		assert.False(t, next.IsNegative())
	})

	t.Run("exact payoff reaches zero", func(t *testing.T) {
		next := ApplyRepayment(dec("888.49"), dec("888.49"))
		assert.True(t, next.IsZero(), "got %s", next)
	})

	t.Run("balance never exceeds bounds over full schedule", func(t *testing.T) {
		principal := dec("10000")
		monthly := MonthlyPayment(principal, dec("12"), 12)

		balance := principal
		for i := 0; i < 12; i++ {
			balance = ApplyRepayment(balance, monthly)
			require.False(t, balance.IsNegative(), "month %d: %s", i+1, balance)
			require.True(t, balance.LessThanOrEqual(principal))
		}
		assert.True(t, balance.IsZero(), "after full term: %s", balance)
	})
}
