package forecast

import (
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/utils/accounting"
	"github.com/SscSPs/money_forecast/internal/utils/schedule"
	"github.com/shopspring/decimal"
)

// NeedsRollover reports whether some account still carries an opening balance from a
// year before now's.
func NeedsRollover(state *domain.UserState, now time.Time) bool {
	year := now.Year()
	if state.LastRolloverYear < year {
		return true
	}
	for _, acc := range state.Accounts {
		if base := acc.BaseYear(); base != 0 && base < year && state.RolloverProcessed[acc.AccountID] < year {
			return true
		}
	}
	return false
}

// Rollover carries every account's opening balance forward to the fiscal year of now.
// An account is walked year by year from its base year, adding the realized movements
// of each past year. An (account, year) pair is processed at most once: the account's
// OpeningBalanceYear and the RolloverProcessed marker both move to the new year, so a
// second run changes nothing. Deltas within accounting.NegligibleDelta are carried but
// not reported in the result.
func (r *Reconciler) Rollover(state *domain.UserState, now time.Time) domain.RolloverResult {
	year := now.In(r.loc).Year()
	result := domain.RolloverResult{Year: year, Adjustments: map[string]decimal.Decimal{}}
	if state.RolloverProcessed == nil {
		state.RolloverProcessed = map[string]int{}
	}

	for i := range state.Accounts {
		acc := &state.Accounts[i]
		base := acc.BaseYear()
		if base == 0 {
			acc.OpeningBalanceYear = year
			continue
		}
		if base >= year || state.RolloverProcessed[acc.AccountID] >= year {
			continue
		}

		delta := decimal.Zero
		for y := base; y < year; y++ {
			delta = delta.Add(r.realizedBetween(state, acc.AccountID, schedule.YearStart(y, r.loc), schedule.YearStart(y+1, r.loc)))
		}
		acc.OpeningBalance = acc.OpeningBalance.Add(delta)
		if !accounting.IsNegligible(delta) {
			result.Adjustments[acc.AccountID] = delta
		}
		acc.OpeningBalanceYear = year
		state.RolloverProcessed[acc.AccountID] = year
		result.Applied = true
	}

	if state.LastRolloverYear < year {
		state.LastRolloverYear = year
		result.Applied = true
	}
	return result
}
