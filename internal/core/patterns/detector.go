// Package patterns mines recurring movements out of bank-synced history and
// filters out the ones the user already declared.
package patterns

import (
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/utils/textnorm"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"
)

// minDistinctMonths is how many calendar months a group must span to be a pattern.
const minDistinctMonths = 2

// Detector groups eligible transactions by normalized description.
type Detector struct {
	minMonths int
}

// NewDetector returns a detector requiring two distinct months per group.
func NewDetector() *Detector {
	return &Detector{minMonths: minDistinctMonths}
}

// Eligible reports whether t can feed pattern detection: a realized bank movement
// that was neither generated from a definition nor projected.
func Eligible(t domain.Transaction) bool {
	return t.IsBankSynced && t.IsRealized() && !t.IsGenerated() && !t.IsProjection && t.HasDate()
}

// Detect returns one candidate per description group seen in at least two distinct
// months. Candidates are ordered by key.
func (d *Detector) Detect(txns []domain.Transaction) []domain.RecurrenceCandidate {
	groups := make(map[string][]domain.Transaction)
	for _, t := range txns {
		if !Eligible(t) {
			continue
		}
		key := textnorm.Normalize(t.Description)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], t)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var out []domain.RecurrenceCandidate
	for _, key := range keys {
		group := groups[key]
		months := distinctMonths(group)
		if len(months) < d.minMonths {
			continue
		}
		out = append(out, summarize(key, group, months))
	}
	return out
}

func summarize(key string, group []domain.Transaction, months []string) domain.RecurrenceCandidate {
	slices.SortStableFunc(group, func(a, b domain.Transaction) int { return a.Date.Compare(b.Date) })

	total := decimal.Zero
	positives := 0
	categories := make(map[string]int)
	accounts := make(map[string]int)
	dates := make([]time.Time, 0, len(group))
	for _, t := range group {
		total = total.Add(t.Amount.Abs())
		if t.Amount.IsPositive() {
			positives++
		}
		if t.Category != "" {
			categories[t.Category]++
		}
		if t.AccountID != "" {
			accounts[t.AccountID]++
		}
		dates = append(dates, t.Date)
	}

	freq, interval := EstimateFrequency(dates)
	label := freq.Label()
	if freq == domain.CustomFrequency {
		label = domain.CustomFrequencyLabel(interval)
	}

	return domain.RecurrenceCandidate{
		ID:                 CandidateID(key),
		Key:                key,
		RepresentativeName: group[len(group)-1].Description,
		AverageAmount:      total.Div(decimal.NewFromInt(int64(len(group)))).Round(2),
		IsIncome:           positives*2 > len(group),
		DominantCategory:   mostFrequent(categories),
		DominantAccount:    mostFrequent(accounts),
		EstimatedFrequency: freq,
		IntervalDays:       interval,
		FrequencyLabel:     label,
		MonthsObserved:     months,
		ObservedDates:      dates,
		Occurrences:        len(group),
	}
}

// CandidateID derives a stable id from the normalized key so the same pattern keeps
// its id across detections.
func CandidateID(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return "cand_" + hex.EncodeToString(sum[:8])
}

func distinctMonths(group []domain.Transaction) []string {
	seen := make(map[string]struct{})
	for _, t := range group {
		seen[fmt.Sprintf("%04d-%02d", t.Date.Year(), int(t.Date.Month()))] = struct{}{}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	slices.Sort(months)
	return months
}

// mostFrequent returns the key with the highest count; ties go to the smallest key.
func mostFrequent(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && strings.Compare(k, best) < 0) {
			best, bestN = k, n
		}
	}
	return best
}

type frequencyRange struct {
	min, max float64
	freq     domain.Frequency
}

var frequencyRanges = []frequencyRange{
	{6, 8, domain.Weekly},
	{13, 16, domain.Biweekly},
	{28, 32, domain.Monthly},
	{85, 95, domain.Quarterly},
	{175, 185, domain.Semiannual},
	{360, 370, domain.Annual},
}

// EstimateFrequency classifies the average gap between the distinct calendar days in
// dates. It also returns the rounded average gap in days. Fewer than two distinct
// days give a custom frequency with a zero interval.
func EstimateFrequency(dates []time.Time) (domain.Frequency, int) {
	days := distinctDays(dates)
	if len(days) < 2 {
		return domain.CustomFrequency, 0
	}
	span := days[len(days)-1].Sub(days[0]).Hours() / 24
	avg := span / float64(len(days)-1)
	interval := int(math.Round(avg))

	if avg <= 1.5 {
		return domain.Daily, interval
	}
	for _, r := range frequencyRanges {
		if avg >= r.min && avg <= r.max {
			return r.freq, interval
		}
	}
	return domain.CustomFrequency, interval
}

func distinctDays(dates []time.Time) []time.Time {
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		y, m, day := d.Date()
		days = append(days, time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })
}
