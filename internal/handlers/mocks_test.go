package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) SetAccountHidden(ctx context.Context, userID string, accountID string, hidden bool) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID, hidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock RecurringService ---
type MockRecurringService struct {
	mock.Mock
}

func (m *MockRecurringService) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringDefinition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringDefinition), args.Error(1)
}
func (m *MockRecurringService) CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, int, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.RecurringDefinition), args.Int(1), args.Error(2)
}
func (m *MockRecurringService) UpdateRecurring(ctx context.Context, userID string, id string, req dto.UpdateRecurringRequest) (*domain.RecurringDefinition, recurrence.Plan, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, recurrence.Plan{}, args.Error(2)
	}
	return args.Get(0).(*domain.RecurringDefinition), args.Get(1).(recurrence.Plan), args.Error(2)
}
func (m *MockRecurringService) DeleteRecurring(ctx context.Context, userID string, id string) (int, error) {
	args := m.Called(ctx, userID, id)
	return args.Int(0), args.Error(1)
}
func (m *MockRecurringService) GenerateAll(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.RecurringSvcFacade = (*MockRecurringService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}
func (m *MockTransactionService) CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) ([]string, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock CandidateService ---
type MockCandidateService struct {
	mock.Mock
}

func (m *MockCandidateService) ListCandidates(ctx context.Context, userID string) ([]domain.RecurrenceCandidate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurrenceCandidate), args.Error(1)
}
func (m *MockCandidateService) AcceptCandidate(ctx context.Context, userID string, candidateID string, req dto.AcceptCandidateRequest) (*domain.RecurringDefinition, int, error) {
	args := m.Called(ctx, userID, candidateID, req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.RecurringDefinition), args.Int(1), args.Error(2)
}
func (m *MockCandidateService) DismissCandidate(ctx context.Context, userID string, candidateID string) error {
	args := m.Called(ctx, userID, candidateID)
	return args.Error(0)
}

var _ portssvc.CandidateSvcFacade = (*MockCandidateService)(nil)

// --- Mock ForecastService ---
type MockForecastService struct {
	mock.Mock
}

func (m *MockForecastService) GetDashboard(ctx context.Context, userID string, period domain.Period) (*domain.Dashboard, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}
func (m *MockForecastService) RunRollover(ctx context.Context, userID string) (*domain.RolloverResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RolloverResult), args.Error(1)
}
func (m *MockForecastService) GetState(ctx context.Context, userID string) (*domain.UserState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserState), args.Error(1)
}

var _ portssvc.ForecastSvcFacade = (*MockForecastService)(nil)

// --- Mock ImportService ---
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) SyncBankTransactions(ctx context.Context, userID string, since time.Time) (*domain.ImportSummary, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportSummary), args.Error(1)
}

var _ portssvc.ImportSvcFacade = (*MockImportService)(nil)
