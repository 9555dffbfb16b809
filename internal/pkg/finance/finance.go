// Package finance implements the amortization math for cooperative loans.
// All arithmetic runs on fixed-point decimals; results carry currency
// semantics and are rounded to 2 decimal places.
package finance

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// MonthlyRate converts an annual interest rate in percent to a monthly rate.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(twelve)
}

// MonthlyPayment computes the fixed monthly payment for an amortizing loan:
// M = P·r·(1+r)^n / ((1+r)^n − 1), or P/n for a zero-rate loan.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.Div(n).Round(2)
	}

	growth := one.Add(r).Pow(n)
	payment := principal.Mul(r).Mul(growth).Div(growth.Sub(one))
	return payment.Round(2)
}

// TotalRepayable computes the total amount repaid over the full term.
// Rounding the payment to cents can leave M·n a hair below the
// principal on zero-rate schedules, so the total floors at the
// principal to keep every balance inside [0, total].
func TotalRepayable(principal, monthlyPayment decimal.Decimal, termMonths int) decimal.Decimal {
	total := monthlyPayment.Mul(decimal.NewFromInt(int64(termMonths))).Round(2)
	if total.LessThan(principal) {
		return principal.Round(2)
	}
	return total
}

// ApplyRepayment reduces a remaining balance by a repayment amount.
// The balance floors at zero; overpayment is capped, never negative.
func ApplyRepayment(remaining, amount decimal.Decimal) decimal.Decimal {
	next := remaining.Sub(amount)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next.Round(2)
}
