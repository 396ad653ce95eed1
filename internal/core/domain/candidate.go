package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceCandidate is a recurring pattern mined from bank-synced history that the
// user has not declared yet. It is derived on demand and never stored.
type RecurrenceCandidate struct {
	ID                 string          `json:"id"`
	Key                string          `json:"key"` // normalized description shared by the group
	RepresentativeName string          `json:"representativeName"`
	AverageAmount      decimal.Decimal `json:"averageAmount"` // mean of absolute amounts
	IsIncome           bool            `json:"isIncome"`
	DominantCategory   string          `json:"dominantCategory"`
	DominantAccount    string          `json:"dominantAccount"`
	EstimatedFrequency Frequency       `json:"estimatedFrequency"`
	IntervalDays       int             `json:"intervalDays"`
	FrequencyLabel     string          `json:"frequencyLabel"`
	MonthsObserved     []string        `json:"monthsObserved"` // sorted "YYYY-MM"
	ObservedDates      []time.Time     `json:"observedDates"`
	Occurrences        int             `json:"occurrences"`
}

// SignedAmount returns the average amount with the sign of the observed movements.
func (c RecurrenceCandidate) SignedAmount() decimal.Decimal {
	if c.IsIncome {
		return c.AverageAmount
	}
	return c.AverageAmount.Neg()
}
