package accounting

import (
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NegligibleDelta is the largest balance change too small to report.
var NegligibleDelta = decimal.RequireFromString("0.01")

// NormalizeAmountSign applies the sign convention of a recurring definition:
// transfers are always positive; normal definitions are negative when their category
// is an expense or savings outflow and positive otherwise (income).
func NormalizeAmountSign(amount decimal.Decimal, kind domain.TransactionKind, categoryKind domain.CategoryKind) decimal.Decimal {
	abs := amount.Abs()
	if kind == domain.Transfer {
		return abs
	}
	switch categoryKind {
	case domain.ExpenseCategory, domain.SavingsCategory:
		return abs.Neg()
	case domain.IncomeCategory:
		return abs
	}
	// unknown category: keep what the caller typed
	return amount
}

// WithinRelativeTolerance reports whether |a| and |b| differ by at most tol of the
// larger magnitude.
func WithinRelativeTolerance(a, b decimal.Decimal, tol decimal.Decimal) bool {
	a, b = a.Abs(), b.Abs()
	larger := decimal.Max(a, b)
	if larger.IsZero() {
		return true
	}
	return a.Sub(b).Abs().LessThanOrEqual(larger.Mul(tol))
}

// IsNegligible reports whether delta is too small to be applied to a balance.
func IsNegligible(delta decimal.Decimal) bool {
	return delta.Abs().LessThanOrEqual(NegligibleDelta)
}

// SumAmounts adds up transaction amounts.
func SumAmounts(txns []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		sum = sum.Add(t.Amount)
	}
	return sum
}
