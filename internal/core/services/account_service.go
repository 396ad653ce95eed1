package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/SscSPs/money_forecast/internal/utils"
)

type accountService struct {
	BaseService
	store *StateStore
}

// NewAccountService creates the account service.
func NewAccountService(store *StateStore) portssvc.AccountSvcFacade {
	return &accountService{store: store}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	st, err := s.store.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if st.Accounts == nil {
		return []domain.Account{}, nil
	}
	return st.Accounts, nil
}

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := s.store.Now()
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	account := domain.Account{
		AccountID:          s.store.NewID(),
		Name:               strings.TrimSpace(req.Name),
		Kind:               req.Kind,
		CurrencyCode:       currency,
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceYear: now.Year(),
		ExternalID:         req.ExternalID,
		ExternallySynced:   req.ExternalID != "",
		AuditFields:        domain.NewAuditFields(userID, now),
	}
	if account.Name == "" || !account.Kind.Valid() {
		return nil, fmt.Errorf("%w: account name and a valid kind are required", apperrors.ErrValidation)
	}

	st, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		if account.ExternalID != "" && slices.ContainsFunc(st.Accounts, func(a domain.Account) bool { return a.ExternalID == account.ExternalID }) {
			return fmt.Errorf("%w: account linked to %s", apperrors.ErrDuplicate, account.ExternalID)
		}
		st.Accounts = append(st.Accounts, account)
		if st.RolloverProcessed == nil {
			st.RolloverProcessed = map[string]int{}
		}
		st.RolloverProcessed[account.AccountID] = account.OpeningBalanceYear
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account",
			slog.String("user_id", userID),
			slog.String("name", account.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("kind", string(account.Kind)))
	stored, _ := st.FindAccount(account.AccountID)
	return stored, nil
}

func (s *accountService) SetAccountHidden(ctx context.Context, userID string, accountID string, hidden bool) (*domain.Account, error) {
	st, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		acc, ok := st.FindAccount(accountID)
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		acc.Hidden = hidden
		acc.Touch(userID, s.store.Now())
		return nil
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to update account visibility", slog.String("account_id", accountID))
		}
		return nil, err
	}
	acc, _ := st.FindAccount(accountID)
	return acc, nil
}
