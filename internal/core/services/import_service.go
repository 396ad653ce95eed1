package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	portsrepo "github.com/SscSPs/money_forecast/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/utils/schedule"
)

type importService struct {
	BaseService
	store       *StateStore
	source      portsrepo.BankTransactionReader
	categorizer portssvc.Categorizer
}

// NewImportService creates the bank synchronization service.
func NewImportService(store *StateStore, source portsrepo.BankTransactionReader, categorizer portssvc.Categorizer) portssvc.ImportSvcFacade {
	return &importService{store: store, source: source, categorizer: categorizer}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// SyncBankTransactions fetches outside the commit so a slow provider never holds a
// loaded document; deduplication happens against the state loaded by the commit.
func (s *importService) SyncBankTransactions(ctx context.Context, userID string, since time.Time) (*domain.ImportSummary, error) {
	now := s.store.Now()
	if since.IsZero() {
		since = schedule.YearStart(now.Year(), now.Location())
	}

	fetched, err := s.source.FetchTransactions(ctx, userID, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch bank transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to fetch bank transactions: %w", err)
	}

	summary := domain.ImportSummary{Fetched: len(fetched)}
	_, err = s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		summary.Imported, summary.Duplicates, summary.Unmatched = 0, 0, 0

		known := make(map[string]bool, len(st.Transactions))
		for _, t := range st.Transactions {
			if t.ExternalID != "" {
				known[t.ExternalID] = true
			}
		}
		byExternal := make(map[string]string, len(st.Accounts))
		for _, a := range st.Accounts {
			if a.ExternalID != "" {
				byExternal[a.ExternalID] = a.AccountID
			}
		}

		for _, bt := range fetched {
			if bt.ID == "" || known[bt.ID] {
				summary.Duplicates++
				continue
			}
			accountID, ok := byExternal[bt.AccountID]
			if !ok {
				summary.Unmatched++
				continue
			}
			status := domain.Upcoming
			if !bt.Date.After(now) {
				status = domain.Realized
			}
			st.Transactions = append(st.Transactions, domain.Transaction{
				ID:           s.store.NewID(),
				Date:         bt.Date,
				Description:  strings.TrimSpace(bt.Description),
				Amount:       bt.Amount,
				Category:     s.categorizer.Categorize(bt.Description, bt.Amount),
				AccountID:    accountID,
				Status:       status,
				Kind:         domain.Normal,
				IsBankSynced: true,
				ExternalID:   bt.ID,
			})
			known[bt.ID] = true
			summary.Imported++
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to store bank transactions", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank transactions synchronized",
		slog.String("user_id", userID),
		slog.Int("fetched", summary.Fetched),
		slog.Int("imported", summary.Imported),
		slog.Int("duplicates", summary.Duplicates),
		slog.Int("unmatched", summary.Unmatched))
	return &summary, nil
}
