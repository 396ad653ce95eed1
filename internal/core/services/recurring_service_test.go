package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
	"github.com/SscSPs/money_forecast/internal/core/services"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecurringServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStateRepository
	service  portssvc.RecurringSvcFacade
	saved    *domain.UserState
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockStateRepository)
	suite.service = services.NewRecurringService(newTestStore(suite.mockRepo))
	suite.saved = nil
}

func (suite *RecurringServiceTestSuite) expectSave() {
	suite.mockRepo.On("SaveState", mock.Anything, mock.AnythingOfType("*domain.UserState")).
		Run(func(args mock.Arguments) { suite.saved = args.Get(1).(*domain.UserState) }).
		Return(nil).Once()
}

func rentDefinition() domain.RecurringDefinition {
	return domain.RecurringDefinition{
		ID:            "rent",
		Name:          "Loyer",
		Amount:        dec("-800"),
		Category:      "Logement",
		Frequency:     domain.Monthly,
		DayOfMonth:    5,
		SourceAccount: "chk",
		Kind:          domain.Normal,
		AuditFields:   domain.NewAuditFields(testUserID, date(2024, time.December, 1)),
	}
}

// stateWithRent holds the rent definition and its twelve 2025 instances.
func stateWithRent() *domain.UserState {
	st := baseState()
	def := rentDefinition()
	st.RecurringDefinitions = []domain.RecurringDefinition{def}
	gen := recurrence.NewGenerator(recurrence.WithClock(fixedClock), recurrence.WithIDGenerator(sequentialIDs("seed")))
	st.Transactions = gen.Generate(st, st.RecurringDefinitions)
	return st
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_GeneratesTheYear() {
	ctx := context.Background()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(baseState(), nil).Once()
	suite.expectSave()

	req := dto.CreateRecurringRequest{
		Name:          " Loyer ",
		Amount:        dec("800"),
		Category:      "Logement",
		Frequency:     domain.Monthly,
		DayOfMonth:    5,
		SourceAccount: "chk",
	}
	def, created, err := suite.service.CreateRecurring(ctx, testUserID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(def)
	suite.Equal("Loyer", def.Name)
	suite.Equal(domain.Normal, def.Kind)
	suite.True(dec("-800").Equal(def.Amount), "expense amounts are stored negative")
	suite.Equal(12, created)

	suite.Require().NotNil(suite.saved)
	suite.Len(suite.saved.RecurringDefinitions, 1)
	suite.Len(suite.saved.Transactions, 12)
	for _, txn := range suite.saved.Transactions {
		suite.Equal(def.ID, txn.OriginRecurringID)
		suite.True(dec("-800").Equal(txn.Amount))
		suite.Equal(5, txn.Date.Day())
		if txn.Date.Before(testNow) {
			suite.Equal(domain.Realized, txn.Status, txn.Date.String())
		} else {
			suite.Equal(domain.Upcoming, txn.Status, txn.Date.String())
		}
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_TransferCreatesPairs() {
	ctx := context.Background()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(baseState(), nil).Once()
	suite.expectSave()

	req := dto.CreateRecurringRequest{
		Name:               "Épargne mensuelle",
		Amount:             dec("-150"),
		Frequency:          domain.Quarterly,
		DayOfMonth:         1,
		SourceAccount:      "chk",
		DestinationAccount: "sav",
		Kind:               domain.Transfer,
	}
	def, created, err := suite.service.CreateRecurring(ctx, testUserID, req)

	suite.Require().NoError(err)
	suite.True(dec("150").Equal(def.Amount), "transfer amounts are stored positive")
	suite.Equal(8, created, "four quarters, two legs each")

	legs := map[string]domain.Transaction{}
	for _, txn := range suite.saved.Transactions {
		legs[txn.ID] = txn
	}
	for _, txn := range suite.saved.Transactions {
		other, ok := legs[txn.LinkedTransferID]
		suite.Require().True(ok)
		suite.Equal(txn.ID, other.LinkedTransferID)
		suite.True(txn.Amount.Neg().Equal(other.Amount))
		suite.NotEqual(txn.AccountID, other.AccountID)
	}
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_UnknownAccountIsRejected() {
	ctx := context.Background()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(baseState(), nil).Once()

	req := dto.CreateRecurringRequest{
		Name:          "Loyer",
		Amount:        dec("800"),
		Category:      "Logement",
		Frequency:     domain.Monthly,
		DayOfMonth:    5,
		SourceAccount: "nope",
	}
	def, created, err := suite.service.CreateRecurring(ctx, testUserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(def)
	suite.Zero(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveState", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_InvalidDefinitionIsRejected() {
	ctx := context.Background()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(baseState(), nil).Once()

	req := dto.CreateRecurringRequest{
		Name:          "Loyer",
		Amount:        dec("0"),
		Category:      "Logement",
		Frequency:     domain.Monthly,
		DayOfMonth:    5,
		SourceAccount: "chk",
	}
	_, _, err := suite.service.CreateRecurring(ctx, testUserID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveState", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_ConflictIsPropagated() {
	ctx := context.Background()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(baseState(), nil).Once()
	suite.mockRepo.On("SaveState", ctx, mock.AnythingOfType("*domain.UserState")).Return(apperrors.ErrConflict).Once()

	req := dto.CreateRecurringRequest{
		Name:          "Loyer",
		Amount:        dec("800"),
		Category:      "Logement",
		Frequency:     domain.Monthly,
		DayOfMonth:    5,
		SourceAccount: "chk",
	}
	def, _, err := suite.service.CreateRecurring(ctx, testUserID, req)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(def)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestUpdateRecurring_KeepsRealizedHistory() {
	ctx := context.Background()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(stateWithRent(), nil).Once()
	suite.expectSave()

	amount := dec("900")
	def, plan, err := suite.service.UpdateRecurring(ctx, testUserID, "rent", dto.UpdateRecurringRequest{Amount: &amount})

	suite.Require().NoError(err)
	suite.True(dec("-900").Equal(def.Amount))
	suite.Len(plan.ToDelete, 9)
	suite.Len(plan.ToInsert, 9)

	suite.Require().Len(suite.saved.Transactions, 12)
	for _, txn := range suite.saved.Transactions {
		if txn.Date.Month() <= time.March {
			suite.True(dec("-800").Equal(txn.Amount), txn.Date.String())
		} else {
			suite.True(dec("-900").Equal(txn.Amount), txn.Date.String())
		}
	}
	suite.Equal(testNow, suite.saved.RecurringDefinitions[0].LastUpdatedAt)
}

func (suite *RecurringServiceTestSuite) TestUpdateRecurring_WithoutPreservationRebuildsFromCurrentMonth() {
	ctx := context.Background()
	policy := recurrence.RegenerationPolicy{PreserveRealizedHistory: false}
	suite.service = services.NewRecurringService(newTestStore(suite.mockRepo), services.WithRegenerationPolicy(policy))
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(stateWithRent(), nil).Once()
	suite.expectSave()

	amount := dec("900")
	_, plan, err := suite.service.UpdateRecurring(ctx, testUserID, "rent", dto.UpdateRecurringRequest{Amount: &amount})

	suite.Require().NoError(err)
	suite.Len(plan.ToDelete, 12)
	suite.Len(suite.saved.Transactions, 10)
	for _, txn := range suite.saved.Transactions {
		suite.GreaterOrEqual(txn.Date.Month(), time.March)
	}
}

func (suite *RecurringServiceTestSuite) TestUpdateRecurring_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(baseState(), nil).Once()

	name := "Nouveau"
	def, _, err := suite.service.UpdateRecurring(ctx, testUserID, "missing", dto.UpdateRecurringRequest{Name: &name})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(def)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveState", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestDeleteRecurring_RemovesEveryInstance() {
	ctx := context.Background()
	st := stateWithRent()
	st.Transactions = append(st.Transactions, realizedTxn("manual", "chk", date(2025, time.February, 2), "-12"))
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(st, nil).Once()
	suite.expectSave()

	removed, err := suite.service.DeleteRecurring(ctx, testUserID, "rent")

	suite.Require().NoError(err)
	suite.Equal(12, removed)
	suite.Empty(suite.saved.RecurringDefinitions)
	suite.Require().Len(suite.saved.Transactions, 1)
	suite.Equal("manual", suite.saved.Transactions[0].ID)
}

func (suite *RecurringServiceTestSuite) TestGenerateAll_IsIdempotent() {
	ctx := context.Background()
	st := stateWithRent()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(st, nil).Once()
	suite.expectSave()

	created, err := suite.service.GenerateAll(ctx, testUserID)

	suite.Require().NoError(err)
	suite.Zero(created)
	suite.Len(suite.saved.Transactions, 12)
}

func (suite *RecurringServiceTestSuite) TestGenerateAll_FillsMissingSlots() {
	ctx := context.Background()
	st := stateWithRent()
	st.Transactions = st.Transactions[:6]
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(st, nil).Once()
	suite.expectSave()

	created, err := suite.service.GenerateAll(ctx, testUserID)

	suite.Require().NoError(err)
	suite.Equal(6, created)
	suite.Len(suite.saved.Transactions, 12)
}

func (suite *RecurringServiceTestSuite) TestListRecurring() {
	ctx := context.Background()
	suite.mockRepo.On("LoadState", ctx, testUserID).Return(stateWithRent(), nil).Once()

	defs, err := suite.service.ListRecurring(ctx, testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(defs, 1)
	suite.Equal("rent", defs[0].ID)
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
