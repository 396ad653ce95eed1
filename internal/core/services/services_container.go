package services

import (
	portsrepo "github.com/SscSPs/money_forecast/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
	"github.com/SscSPs/money_forecast/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// categorizer may be nil when repos.BankSource is nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, categorizer portssvc.Categorizer, options ...StoreOption) *portssvc.ServiceContainer {
	// Every service shares one store so they agree on the clock and id source
	store := NewStateStore(repos.StateRepo, options...)

	policy := recurrence.RegenerationPolicy{PreserveRealizedHistory: cfg.PreserveRealizedHistory}

	container := &portssvc.ServiceContainer{
		Account:     NewAccountService(store),
		Recurring:   NewRecurringService(store, WithRegenerationPolicy(policy)),
		Candidate:   NewCandidateService(store),
		Forecast:    NewForecastService(store),
		Transaction: NewTransactionService(store),
	}

	if repos.BankSource != nil && categorizer != nil {
		container.Import = NewImportService(store, repos.BankSource, categorizer)
	}

	return container
}
