package recurrence

import (
	"slices"
	"strings"

	"github.com/SscSPs/money_forecast/internal/core/domain"
)

// Plan is the set of changes that turns the current instances of a definition into
// the desired ones. It is applied in a single state transition.
type Plan struct {
	ToDelete []string             `json:"toDelete"`
	ToInsert []domain.Transaction `json:"toInsert"`
}

// IsEmpty reports whether applying the plan would change nothing.
func (p Plan) IsEmpty() bool {
	return len(p.ToDelete) == 0 && len(p.ToInsert) == 0
}

// RegenerationPolicy decides what happens to history when a definition is edited.
type RegenerationPolicy struct {
	// PreserveRealizedHistory keeps realized instances dated before now untouched.
	// When false every instance is dropped and only the current month onward is rebuilt.
	PreserveRealizedHistory bool
}

// DefaultPolicy keeps realized history.
var DefaultPolicy = RegenerationPolicy{PreserveRealizedHistory: true}

// Diff compares old and desired instances slot by slot, keyed by
// (definition, year, month). A slot whose content is unchanged keeps the old
// instances; a changed slot replaces them; slots only present on one side are
// deleted or inserted. Transactions without a slot are ignored.
func Diff(old, desired []domain.Transaction) Plan {
	oldSlots := groupBySlot(old)
	newSlots := groupBySlot(desired)

	var plan Plan
	for _, key := range sortedKeys(oldSlots) {
		current := oldSlots[key]
		want, ok := newSlots[key]
		if ok && sameSlot(current, want) {
			continue
		}
		for _, t := range current {
			plan.ToDelete = append(plan.ToDelete, t.ID)
		}
	}
	for _, key := range sortedKeys(newSlots) {
		want := newSlots[key]
		if current, ok := oldSlots[key]; ok && sameSlot(current, want) {
			continue
		}
		plan.ToInsert = append(plan.ToInsert, want...)
	}
	return plan
}

// Regenerate plans the instances of an edited definition. Realized instances dated
// before now survive when the policy asks for it. Slots from the current month onward
// are rebuilt from the new definition; earlier months only keep what survived.
func (g *Generator) Regenerate(state *domain.UserState, def domain.RecurringDefinition, policy RegenerationPolicy) Plan {
	now := g.now()
	var old, preserved []domain.Transaction
	for _, t := range state.Transactions {
		if t.OriginRecurringID != def.ID {
			continue
		}
		old = append(old, t)
		if policy.PreserveRealizedHistory && t.IsRealized() && t.HasDate() && t.Date.Before(now) {
			preserved = append(preserved, t)
		}
	}
	// a transfer slot is preserved only as a whole
	preserved = completePairs(preserved, old)

	scratch := &domain.UserState{
		Accounts:            state.Accounts,
		AccountCreationDate: state.AccountCreationDate,
		Transactions:        preserved,
	}
	// past months are never backfilled by an edit
	monthStart, _ := domain.MonthOf(now).Bounds(now.Location())
	fresh := g.Generate(scratch, []domain.RecurringDefinition{def})
	fresh = slices.DeleteFunc(fresh, func(t domain.Transaction) bool { return t.Date.Before(monthStart) })

	desired := append(slices.Clone(preserved), fresh...)
	return Diff(old, desired)
}

// Apply executes a plan against state. Deleting one leg of a transfer deletes both.
func Apply(state *domain.UserState, plan Plan) {
	if len(plan.ToDelete) > 0 {
		state.Transactions, _ = RemoveWithLinkedLegs(state.Transactions, plan.ToDelete)
	}
	state.Transactions = append(state.Transactions, plan.ToInsert...)
}

func groupBySlot(txns []domain.Transaction) map[InstanceKey][]domain.Transaction {
	slots := make(map[InstanceKey][]domain.Transaction)
	for _, t := range txns {
		if key, ok := KeyOf(t); ok {
			slots[key] = append(slots[key], t)
		}
	}
	return slots
}

func sortedKeys(m map[InstanceKey][]domain.Transaction) []InstanceKey {
	keys := make([]InstanceKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b InstanceKey) int {
		if c := strings.Compare(a.DefinitionID, b.DefinitionID); c != 0 {
			return c
		}
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Month - b.Month
	})
	return keys
}

// sameSlot compares two slots leg by leg, ignoring ids and link pointers.
func sameSlot(a, b []domain.Transaction) bool {
	if len(a) != len(b) {
		return false
	}
	byAccount := func(t domain.Transaction) string { return t.AccountID }
	as, bs := slices.Clone(a), slices.Clone(b)
	slices.SortFunc(as, func(x, y domain.Transaction) int { return strings.Compare(byAccount(x), byAccount(y)) })
	slices.SortFunc(bs, func(x, y domain.Transaction) int { return strings.Compare(byAccount(x), byAccount(y)) })
	for i := range as {
		x, y := as[i], bs[i]
		if x.AccountID != y.AccountID ||
			!x.Date.Equal(y.Date) ||
			!x.Amount.Equal(y.Amount) ||
			x.Description != y.Description ||
			x.Category != y.Category ||
			x.Kind != y.Kind ||
			x.Status != y.Status {
			return false
		}
	}
	return true
}

// completePairs adds to subset the missing leg of any transfer it contains, as long as
// that leg is in all.
func completePairs(subset, all []domain.Transaction) []domain.Transaction {
	have := make(map[string]bool, len(subset))
	for _, t := range subset {
		have[t.ID] = true
	}
	out := subset
	for _, t := range all {
		if have[t.ID] || t.LinkedTransferID == "" || !have[t.LinkedTransferID] {
			continue
		}
		out = append(out, t)
		have[t.ID] = true
	}
	return out
}
