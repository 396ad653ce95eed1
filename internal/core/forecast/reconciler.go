// Package forecast derives per-account balances for a month or a year from the
// realized and upcoming transactions of a state document, and carries opening
// balances across fiscal years.
package forecast

import (
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/utils/schedule"
	"github.com/shopspring/decimal"
)

// Reconciler computes forecast-vs-actual figures. It never fails: records without a
// usable date or status contribute nothing.
type Reconciler struct {
	loc *time.Location
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLocation sets the time zone period boundaries are computed in.
func WithLocation(loc *time.Location) Option {
	return func(r *Reconciler) {
		r.loc = loc
	}
}

// NewReconciler returns a Reconciler working in UTC unless configured otherwise.
func NewReconciler(opts ...Option) *Reconciler {
	r := &Reconciler{loc: time.UTC}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AccountStats returns the balance breakdown of one account over period.
func (r *Reconciler) AccountStats(state *domain.UserState, acc domain.Account, period domain.Period) domain.AccountStats {
	start, end := period.Bounds(r.loc)
	savingsLegs := r.savingsOutflows(state)

	stats := domain.AccountStats{
		AccountID:          acc.AccountID,
		AccountName:        acc.Name,
		Kind:               acc.Kind,
		Hidden:             acc.Hidden,
		PeriodStartBalance: r.balanceAt(state, acc, start),
	}

	realized, upcoming := decimal.Zero, decimal.Zero
	for _, t := range state.Transactions {
		if t.AccountID != acc.AccountID || !t.HasDate() || t.Date.Before(start) || !t.Date.Before(end) {
			continue
		}
		switch {
		case countsAsRealized(t):
			realized = realized.Add(t.Amount)
			switch {
			case savingsLegs[t.ID]:
				stats.RealizedSavings = stats.RealizedSavings.Add(t.Amount.Abs())
			case t.Amount.IsPositive():
				stats.RealizedIncome = stats.RealizedIncome.Add(t.Amount)
			case t.Amount.IsNegative():
				stats.RealizedExpense = stats.RealizedExpense.Add(t.Amount.Abs())
			}
		case countsAsUpcoming(t):
			upcoming = upcoming.Add(t.Amount)
			if t.Amount.IsPositive() {
				stats.ProjectedIncome = stats.ProjectedIncome.Add(t.Amount)
			} else {
				stats.ProjectedExpense = stats.ProjectedExpense.Add(t.Amount.Abs())
			}
		}
	}

	stats.CurrentBalance = stats.PeriodStartBalance.Add(realized)
	stats.ForecastBalance = stats.CurrentBalance.Add(upcoming)
	return stats
}

// Dashboard returns the stats of every account and the totals over visible ones.
func (r *Reconciler) Dashboard(state *domain.UserState, period domain.Period) domain.Dashboard {
	d := domain.Dashboard{Period: period, Accounts: make([]domain.AccountStats, 0, len(state.Accounts))}
	for _, acc := range state.Accounts {
		s := r.AccountStats(state, acc, period)
		d.Accounts = append(d.Accounts, s)
		if s.Hidden {
			continue
		}
		d.Totals.CurrentBalance = d.Totals.CurrentBalance.Add(s.CurrentBalance)
		d.Totals.ForecastBalance = d.Totals.ForecastBalance.Add(s.ForecastBalance)
		d.Totals.RealizedIncome = d.Totals.RealizedIncome.Add(s.RealizedIncome)
		d.Totals.RealizedExpense = d.Totals.RealizedExpense.Add(s.RealizedExpense)
		d.Totals.RealizedSavings = d.Totals.RealizedSavings.Add(s.RealizedSavings)
		d.Totals.ProjectedIncome = d.Totals.ProjectedIncome.Add(s.ProjectedIncome)
		d.Totals.ProjectedExpense = d.Totals.ProjectedExpense.Add(s.ProjectedExpense)
	}
	return d
}

// RefreshBalanceCache stores the balance of every account as of now in
// CurrentBalanceCache.
func (r *Reconciler) RefreshBalanceCache(state *domain.UserState, now time.Time) {
	for i := range state.Accounts {
		b := r.balanceAt(state, state.Accounts[i], now)
		state.Accounts[i].CurrentBalanceCache = &b
	}
}

// balanceAt is the opening balance moved by the realized transactions between the
// start of the account's base year and at. For an instant before the base year the
// movements are subtracted instead.
func (r *Reconciler) balanceAt(state *domain.UserState, acc domain.Account, at time.Time) decimal.Decimal {
	base := acc.BaseYear()
	if base == 0 {
		base = at.In(r.loc).Year()
	}
	anchor := schedule.YearStart(base, r.loc)
	if !at.Before(anchor) {
		return acc.OpeningBalance.Add(r.realizedBetween(state, acc.AccountID, anchor, at))
	}
	return acc.OpeningBalance.Sub(r.realizedBetween(state, acc.AccountID, at, anchor))
}

// realizedBetween sums realized movements of an account dated in [from, to).
func (r *Reconciler) realizedBetween(state *domain.UserState, accountID string, from, to time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range state.Transactions {
		if t.AccountID != accountID || !countsAsRealized(t) || !t.HasDate() {
			continue
		}
		if t.Date.Before(from) || !t.Date.Before(to) {
			continue
		}
		sum = sum.Add(t.Amount)
	}
	return sum
}

// savingsOutflows returns the ids of outgoing transfer legs whose other leg lands on
// a savings account.
func (r *Reconciler) savingsOutflows(state *domain.UserState) map[string]bool {
	accounts := state.AccountsByID()
	legAccount := make(map[string]string, len(state.Transactions))
	for _, t := range state.Transactions {
		if t.IsTransfer() {
			legAccount[t.ID] = t.AccountID
		}
	}
	out := make(map[string]bool)
	for _, t := range state.Transactions {
		if !t.IsTransfer() || !t.Amount.IsNegative() || t.LinkedTransferID == "" {
			continue
		}
		dest, ok := accounts[legAccount[t.LinkedTransferID]]
		if ok && dest.Kind == domain.Savings {
			out[t.ID] = true
		}
	}
	return out
}

// A projection is never part of the actual balance even if it is dated in the past.
func countsAsRealized(t domain.Transaction) bool {
	return t.IsRealized() && !t.IsProjection
}

func countsAsUpcoming(t domain.Transaction) bool {
	return t.IsUpcoming() || (t.IsProjection && t.IsRealized())
}
