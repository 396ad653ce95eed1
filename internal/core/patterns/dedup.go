package patterns

import (
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/utils/accounting"
	"github.com/SscSPs/money_forecast/internal/utils/textnorm"
	"github.com/shopspring/decimal"
)

var (
	// MinNameSimilarity is the Jaccard index from which two names describe the same thing.
	MinNameSimilarity = 0.5
	// AmountTolerance is the relative amount difference still considered a match.
	AmountTolerance = decimal.RequireFromString("0.05")
)

// Matches reports whether candidate c describes the already declared definition def:
// similar names, amounts within tolerance and the same account.
func Matches(c domain.RecurrenceCandidate, def domain.RecurringDefinition) bool {
	if c.DominantAccount != definitionAccount(c, def) {
		return false
	}
	if !accounting.WithinRelativeTolerance(c.AverageAmount, def.Amount, AmountTolerance) {
		return false
	}
	return textnorm.Jaccard(c.Key, def.Name) >= MinNameSimilarity
}

// definitionAccount is the account of def on which bank movements like c show up.
// An incoming transfer lands on the destination account.
func definitionAccount(c domain.RecurrenceCandidate, def domain.RecurringDefinition) string {
	if def.IsTransfer() && c.IsIncome {
		return def.DestinationAccount
	}
	return def.SourceAccount
}

// Deduplicate keeps the candidates that match no existing definition.
func Deduplicate(candidates []domain.RecurrenceCandidate, defs []domain.RecurringDefinition) []domain.RecurrenceCandidate {
	out := make([]domain.RecurrenceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !matchesAny(c, defs) {
			out = append(out, c)
		}
	}
	return out
}

func matchesAny(c domain.RecurrenceCandidate, defs []domain.RecurringDefinition) bool {
	for _, def := range defs {
		if Matches(c, def) {
			return true
		}
	}
	return false
}

// WithoutDismissed drops the candidates whose key the user dismissed.
func WithoutDismissed(candidates []domain.RecurrenceCandidate, state *domain.UserState) []domain.RecurrenceCandidate {
	out := candidates[:0:0]
	for _, c := range candidates {
		if !state.IsDismissed(c.Key) {
			out = append(out, c)
		}
	}
	return out
}
