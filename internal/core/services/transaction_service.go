package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/SscSPs/money_forecast/internal/utils/pagination"
)

const defaultTransferCategory = "Virement"

type transactionService struct {
	BaseService
	store *StateStore
}

// NewTransactionService creates the service for manual transactions.
func NewTransactionService(store *StateStore) portssvc.TransactionSvcFacade {
	return &transactionService{store: store}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	st, err := s.store.Current(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	filtered := make([]domain.Transaction, 0, len(st.Transactions))
	for _, t := range st.Transactions {
		if params.AccountID != "" && t.AccountID != params.AccountID {
			continue
		}
		if params.Status != "" && t.Status != params.Status {
			continue
		}
		filtered = append(filtered, t)
	}

	page, next, err := pagination.PageTransactions(filtered, params.Limit, params.NextToken)
	if err != nil {
		s.LogDebug(ctx, "Rejected pagination token", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return page, next, nil
}

func (s *transactionService) CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) ([]domain.Transaction, error) {
	if req.FromAccountID == "" || req.ToAccountID == "" || req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: a transfer needs two different accounts", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: transfer date is required", apperrors.ErrValidation)
	}

	now := s.store.Now()
	status := domain.Upcoming
	if !req.Date.After(now) {
		status = domain.Realized
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = defaultTransferCategory
	}
	legs := recurrence.NewTransferPair(recurrence.TransferSpec{
		OutID:       s.store.NewID(),
		InID:        s.store.NewID(),
		Date:        req.Date,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Amount:      req.Amount,
		Source:      req.FromAccountID,
		Destination: req.ToAccountID,
		Status:      status,
	})

	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		for _, id := range []string{req.FromAccountID, req.ToAccountID} {
			if _, ok := st.FindAccount(id); !ok {
				return fmt.Errorf("%w: unknown account %s", apperrors.ErrValidation, id)
			}
		}
		st.Transactions = append(st.Transactions, legs...)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create transfer",
			slog.String("user_id", userID),
			slog.String("from_account_id", req.FromAccountID),
			slog.String("to_account_id", req.ToAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer created",
		slog.String("out_id", legs[0].ID),
		slog.String("in_id", legs[1].ID),
		slog.String("amount", req.Amount.String()))
	return legs, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) ([]string, error) {
	var removed []string
	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		if st.FindTransaction(transactionID) < 0 {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		st.Transactions, removed = recurrence.RemoveWithLinkedLegs(st.Transactions, []string{transactionID})
		return nil
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to delete transaction",
				slog.String("user_id", userID),
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.Int("removed", len(removed)))
	return removed, nil
}
