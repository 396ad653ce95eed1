package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKind selects the granularity of a forecast view.
type PeriodKind string

const (
	MonthPeriod PeriodKind = "month"
	YearPeriod  PeriodKind = "year"
)

// Period is a month or a fiscal (calendar) year.
type Period struct {
	Kind  PeriodKind `json:"kind"`
	Year  int        `json:"year"`
	Month time.Month `json:"month,omitempty"`
}

// MonthOf returns the month period containing t.
func MonthOf(t time.Time) Period {
	return Period{Kind: MonthPeriod, Year: t.Year(), Month: t.Month()}
}

// YearOf returns the year period containing t.
func YearOf(t time.Time) Period {
	return Period{Kind: YearPeriod, Year: t.Year()}
}

// Bounds returns the half-open window [start, end) of the period in loc.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	if p.Kind == YearPeriod {
		start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	}
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// AccountStats is the per-account, per-period balance breakdown.
// Expense and savings figures are magnitudes (positive numbers).
type AccountStats struct {
	AccountID          string          `json:"accountID"`
	AccountName        string          `json:"accountName"`
	Kind               AccountKind     `json:"kind"`
	Hidden             bool            `json:"hidden"`
	PeriodStartBalance decimal.Decimal `json:"periodStartBalance"`
	RealizedIncome     decimal.Decimal `json:"realizedIncome"`
	RealizedExpense    decimal.Decimal `json:"realizedExpense"`
	RealizedSavings    decimal.Decimal `json:"realizedSavings"`
	ProjectedIncome    decimal.Decimal `json:"projectedIncome"`
	ProjectedExpense   decimal.Decimal `json:"projectedExpense"`
	CurrentBalance     decimal.Decimal `json:"currentBalance"`
	ForecastBalance    decimal.Decimal `json:"forecastBalance"`
}

// DashboardTotals sums AccountStats over visible accounts.
type DashboardTotals struct {
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	ForecastBalance  decimal.Decimal `json:"forecastBalance"`
	RealizedIncome   decimal.Decimal `json:"realizedIncome"`
	RealizedExpense  decimal.Decimal `json:"realizedExpense"`
	RealizedSavings  decimal.Decimal `json:"realizedSavings"`
	ProjectedIncome  decimal.Decimal `json:"projectedIncome"`
	ProjectedExpense decimal.Decimal `json:"projectedExpense"`
}

// Dashboard is the forecast-vs-actual view for one period.
type Dashboard struct {
	Period   Period          `json:"period"`
	Accounts []AccountStats  `json:"accounts"`
	Totals   DashboardTotals `json:"totals"`
}

// RolloverResult describes what an annual rollover changed.
type RolloverResult struct {
	Year        int                        `json:"year"`
	Applied     bool                       `json:"applied"`
	Adjustments map[string]decimal.Decimal `json:"adjustments"` // account id -> delta added to the opening balance
}
