package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// UserState is the whole per-user document. It is loaded and saved as one unit;
// Version is the optimistic concurrency token owned by the repository.
type UserState struct {
	UserID                 string                `json:"userID"`
	Version                int64                 `json:"-"`
	Accounts               []Account             `json:"accounts"`
	RecurringDefinitions   []RecurringDefinition `json:"recurringDefinitions"`
	Transactions           []Transaction         `json:"transactions"`
	Categories             []Category            `json:"categories"`
	SavingsGoals           json.RawMessage       `json:"savingsGoals,omitempty"`
	Debts                  json.RawMessage       `json:"debts,omitempty"`
	BudgetForecast         json.RawMessage       `json:"budgetForecast,omitempty"`
	AccountCreationDate    *time.Time            `json:"accountCreationDate,omitempty"`
	LastRolloverYear       int                   `json:"lastRolloverYear"`
	RolloverProcessed      map[string]int        `json:"rolloverProcessed,omitempty"` // account id -> last rolled year
	DismissedCandidateKeys []string              `json:"dismissedCandidateKeys,omitempty"`
	UpdatedAt              time.Time             `json:"updatedAt"`
}

// NewUserState returns an empty document seeded with the default categories.
func NewUserState(userID string, now time.Time) *UserState {
	created := now
	return &UserState{
		UserID:               userID,
		Accounts:             []Account{},
		RecurringDefinitions: []RecurringDefinition{},
		Transactions:         []Transaction{},
		Categories:           DefaultCategories(),
		AccountCreationDate:  &created,
		LastRolloverYear:     now.Year(),
		RolloverProcessed:    map[string]int{},
		UpdatedAt:            now,
	}
}

// Clone returns a copy whose slices and maps can be mutated without touching s.
// Mutations are applied to a clone and only swapped in once they fully succeed.
func (s *UserState) Clone() *UserState {
	c := *s
	c.Accounts = slices.Clone(s.Accounts)
	c.RecurringDefinitions = slices.Clone(s.RecurringDefinitions)
	c.Transactions = slices.Clone(s.Transactions)
	c.Categories = slices.Clone(s.Categories)
	c.DismissedCandidateKeys = slices.Clone(s.DismissedCandidateKeys)
	if s.RolloverProcessed != nil {
		c.RolloverProcessed = make(map[string]int, len(s.RolloverProcessed))
		for k, v := range s.RolloverProcessed {
			c.RolloverProcessed[k] = v
		}
	}
	if s.AccountCreationDate != nil {
		d := *s.AccountCreationDate
		c.AccountCreationDate = &d
	}
	return &c
}

// FindAccount returns the account with the given id.
func (s *UserState) FindAccount(id string) (*Account, bool) {
	for i := range s.Accounts {
		if s.Accounts[i].AccountID == id {
			return &s.Accounts[i], true
		}
	}
	return nil, false
}

// AccountsByID indexes accounts by id.
func (s *UserState) AccountsByID() map[string]Account {
	m := make(map[string]Account, len(s.Accounts))
	for _, a := range s.Accounts {
		m[a.AccountID] = a
	}
	return m
}

// FindDefinition returns the index of the definition with the given id, or -1.
func (s *UserState) FindDefinition(id string) int {
	return slices.IndexFunc(s.RecurringDefinitions, func(d RecurringDefinition) bool { return d.ID == id })
}

// FindTransaction returns the index of the transaction with the given id, or -1.
func (s *UserState) FindTransaction(id string) int {
	return slices.IndexFunc(s.Transactions, func(t Transaction) bool { return t.ID == id })
}

// CategoryKindOf looks up a category by name.
func (s *UserState) CategoryKindOf(name string) (CategoryKind, bool) {
	cats := s.Categories
	if len(cats) == 0 {
		cats = DefaultCategories()
	}
	for _, c := range cats {
		if c.Name == name {
			return c.Kind, true
		}
	}
	return "", false
}

// IsDismissed reports whether a candidate key was dismissed by the user.
func (s *UserState) IsDismissed(key string) bool {
	return slices.Contains(s.DismissedCandidateKeys, key)
}
