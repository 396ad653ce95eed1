// Package schedule holds the calendar rules that decide when a recurring
// definition fires. Months are zero-based (0 = January) throughout.
package schedule

import (
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the number of months a fiscal year is expanded into.
const MonthsPerYear = 12

// FiresInMonth reports whether a definition with the given frequency produces an
// instance in month0. The epoch is January, so quarterly fires in Jan/Apr/Jul/Oct.
// Sub-monthly cadences are folded into one instance per month.
func FiresInMonth(freq domain.Frequency, month0 int) bool {
	if month0 < 0 || month0 >= MonthsPerYear {
		return false
	}
	switch freq {
	case domain.Daily, domain.Weekly, domain.Biweekly, domain.Monthly:
		return true
	case domain.Quarterly:
		return month0%3 == 0
	case domain.Semiannual:
		return month0%6 == 0
	case domain.Annual:
		return month0 == 0
	}
	return false
}

// DaysIn returns the number of days of month0 in year.
func DaysIn(year, month0 int) int {
	return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// OccurrenceDate returns midnight of the given day in month0, clamping the day to the
// last day of the month (day 31 in February lands on the 28th or 29th).
func OccurrenceDate(year, month0, day int, loc *time.Location) time.Time {
	if day < 1 {
		day = 1
	}
	if last := DaysIn(year, month0); day > last {
		day = last
	}
	return time.Date(year, time.Month(month0+1), day, 0, 0, 0, 0, loc)
}

// EffectiveStartMonth returns the first month of year that may be populated for a
// definition firing on day. Without a creation date (or one from an earlier year) the
// whole year is eligible; a creation date in a later year yields MonthsPerYear.
//
// When the creation month's occurrence has already passed, that month is skipped once.
// "Already passed" is measured against now when the account was created in the
// current month, and against the creation instant otherwise.
func EffectiveStartMonth(year int, creation *time.Time, day int, now time.Time) int {
	if creation == nil || creation.IsZero() || creation.Year() < year {
		return 0
	}
	if creation.Year() > year {
		return MonthsPerYear
	}

	start := int(creation.Month()) - 1
	occurrence := OccurrenceDate(year, start, day, now.Location())
	reference := *creation
	if creation.Year() == now.Year() && creation.Month() == now.Month() {
		reference = now
	}
	if occurrence.Before(startOfDay(reference)) {
		start++
	}
	return start
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var (
	weeksPerMonth     = decimal.NewFromInt(52).Div(decimal.NewFromInt(12))
	fortnightPerMonth = decimal.NewFromInt(26).Div(decimal.NewFromInt(12))
)

// MonthlyMultiplier is the factor applied to a definition's amount when its cadence is
// folded into a single monthly instance.
func MonthlyMultiplier(freq domain.Frequency, year, month0 int) decimal.Decimal {
	switch freq {
	case domain.Daily:
		return decimal.NewFromInt(int64(DaysIn(year, month0)))
	case domain.Weekly:
		return weeksPerMonth
	case domain.Biweekly:
		return fortnightPerMonth
	}
	return decimal.NewFromInt(1)
}

// YearStart returns January 1st of year in loc.
func YearStart(year int, loc *time.Location) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
}
