// Package recurrence expands recurring definitions into dated transaction
// instances and plans their regeneration when a definition changes.
package recurrence

import (
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/utils/schedule"
	"github.com/google/uuid"
)

// InstanceKey is the month slot of a generated instance. At most one instance
// (or one transfer pair) exists per key.
type InstanceKey struct {
	DefinitionID string
	Year         int
	Month        int // zero-based
}

// KeyOf returns the slot of a generated transaction.
func KeyOf(t domain.Transaction) (InstanceKey, bool) {
	if !t.IsGenerated() || !t.HasDate() {
		return InstanceKey{}, false
	}
	return InstanceKey{DefinitionID: t.OriginRecurringID, Year: t.Date.Year(), Month: int(t.Date.Month()) - 1}, true
}

// Generator expands definitions for the fiscal year containing "now".
type Generator struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDGenerator overrides how instance ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// NewGenerator creates a Generator using the wall clock and UUIDs by default.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Now exposes the generator's clock so callers share one notion of "now".
func (g *Generator) Now() time.Time {
	return g.now()
}

// Generate returns the instances missing from state for defs in the current year.
// Existing transactions are never modified, and a slot that already holds an instance
// is skipped, so a second call with the same input returns nothing.
func (g *Generator) Generate(state *domain.UserState, defs []domain.RecurringDefinition) []domain.Transaction {
	now := g.now()
	existing := indexSlots(state.Transactions)
	accounts := state.AccountsByID()

	var created []domain.Transaction
	for _, def := range defs {
		creation := creationDate(def, accounts, state.AccountCreationDate)
		created = append(created, g.expand(def, now, creation, existing)...)
	}
	return created
}

func (g *Generator) expand(def domain.RecurringDefinition, now time.Time, creation *time.Time, existing map[InstanceKey]bool) []domain.Transaction {
	year := now.Year()
	var out []domain.Transaction
	for month := schedule.EffectiveStartMonth(year, creation, def.DayOfMonth, now); month < schedule.MonthsPerYear; month++ {
		if !schedule.FiresInMonth(def.Frequency, month) {
			continue
		}
		key := InstanceKey{DefinitionID: def.ID, Year: year, Month: month}
		if existing[key] {
			continue
		}
		existing[key] = true

		date := schedule.OccurrenceDate(year, month, def.DayOfMonth, now.Location())
		status := domain.Upcoming
		if date.Before(now) {
			status = domain.Realized
		}
		amount := def.Amount.Mul(schedule.MonthlyMultiplier(def.Frequency, year, month)).Round(2)

		if def.IsTransfer() {
			out = append(out, NewTransferPair(TransferSpec{
				OutID:       g.newID(),
				InID:        g.newID(),
				Date:        date,
				Description: def.Name,
				Category:    def.Category,
				Amount:      amount,
				Source:      def.SourceAccount,
				Destination: def.DestinationAccount,
				Status:      status,
				OriginID:    def.ID,
			})...)
			continue
		}
		out = append(out, domain.Transaction{
			ID:                g.newID(),
			Date:              date,
			Description:       def.Name,
			Amount:            amount,
			Category:          def.Category,
			AccountID:         def.SourceAccount,
			Status:            status,
			Kind:              domain.Normal,
			OriginRecurringID: def.ID,
		})
	}
	return out
}

func indexSlots(txns []domain.Transaction) map[InstanceKey]bool {
	slots := make(map[InstanceKey]bool)
	for _, t := range txns {
		if key, ok := KeyOf(t); ok {
			slots[key] = true
		}
	}
	return slots
}

// creationDate picks the date that bounds generation for def: the latest creation date
// of the accounts it touches, falling back to the document's creation date.
func creationDate(def domain.RecurringDefinition, accounts map[string]domain.Account, fallback *time.Time) *time.Time {
	var latest *time.Time
	for _, id := range []string{def.SourceAccount, def.DestinationAccount} {
		acc, ok := accounts[id]
		if !ok || acc.CreatedAt.IsZero() {
			continue
		}
		created := acc.CreatedAt
		if latest == nil || created.After(*latest) {
			latest = &created
		}
	}
	if latest != nil {
		return latest
	}
	return fallback
}

// PromoteDue marks upcoming transactions dated before now as realized and returns how
// many changed.
func PromoteDue(txns []domain.Transaction, now time.Time) int {
	promoted := 0
	for i := range txns {
		if txns[i].IsUpcoming() && txns[i].HasDate() && txns[i].Date.Before(now) {
			txns[i].Status = domain.Realized
			promoted++
		}
	}
	return promoted
}
