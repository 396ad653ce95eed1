package pgsql

import (
	portsrepo "github.com/SscSPs/money_forecast/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the postgres-backed repositories. bankSource may be nil
// when no aggregation provider is configured.
func NewRepositoryProvider(dbPool *pgxpool.Pool, bankSource portsrepo.BankTransactionReader) portsrepo.RepositoryProvider {
	stateRepo := newPgxStateRepository(dbPool)

	return portsrepo.RepositoryProvider{
		StateRepo:  stateRepo,
		BankSource: bankSource,
	}
}
