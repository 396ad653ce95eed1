package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func rentDef() *domain.RecurringDefinition {
	return &domain.RecurringDefinition{
		ID:            "rec-1",
		Name:          "Loyer",
		Amount:        decimal.NewFromInt(-800),
		Category:      "Logement",
		Frequency:     domain.Monthly,
		DayOfMonth:    5,
		SourceAccount: "chk",
		Kind:          domain.Normal,
	}
}

func (suite *HandlerTestSuite) TestCreateRecurring_Success() {
	suite.mockRecurringService.On("CreateRecurring", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.CreateRecurringRequest) bool {
		return req.Name == "Loyer" && req.Frequency == domain.Monthly && req.DayOfMonth == 5
	})).Return(rentDef(), 12, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/recurring", gin.H{
		"name":          "Loyer",
		"amount":        "800",
		"category":      "Logement",
		"frequency":     "monthly",
		"dayOfMonth":    5,
		"sourceAccount": "chk",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.RecurringMutationResponse
	suite.decode(w, &body)
	suite.Equal("rec-1", body.Definition.ID)
	suite.Equal("Mensuelle", body.Definition.FrequencyLabel)
	suite.Equal(12, body.InstancesCreated)
	suite.mockRecurringService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateRecurring_BindingErrors() {
	tests := []struct {
		name string
		body gin.H
	}{
		{"missing frequency", gin.H{"name": "Loyer", "dayOfMonth": 5, "sourceAccount": "chk"}},
		{"unsupported frequency", gin.H{"name": "Loyer", "frequency": "hourly", "dayOfMonth": 5, "sourceAccount": "chk"}},
		{"day out of range", gin.H{"name": "Loyer", "frequency": "monthly", "dayOfMonth": 32, "sourceAccount": "chk"}},
		{"missing account", gin.H{"name": "Loyer", "frequency": "monthly", "dayOfMonth": 5}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/recurring", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockRecurringService.AssertNotCalled(suite.T(), "CreateRecurring", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateRecurring_ServiceErrors() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.ErrValidation, http.StatusBadRequest},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"storage", assert.AnError, http.StatusInternalServerError},
	}
	body := gin.H{"name": "Loyer", "frequency": "monthly", "dayOfMonth": 5, "sourceAccount": "chk", "amount": "800"}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockRecurringService.On("CreateRecurring", mock.Anything, suite.userID, mock.Anything).Return(nil, 0, tt.err).Once()
			w := suite.do(http.MethodPost, "/api/v1/recurring", body)
			suite.Equal(tt.status, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestUpdateRecurring_ReportsPlan() {
	def := rentDef()
	def.Amount = decimal.NewFromInt(-850)
	plan := recurrence.Plan{
		ToDelete: []string{"a", "b", "c"},
		ToInsert: make([]domain.Transaction, 3),
	}
	suite.mockRecurringService.On("UpdateRecurring", mock.Anything, suite.userID, "rec-1", mock.MatchedBy(func(req dto.UpdateRecurringRequest) bool {
		return req.Amount != nil && req.Amount.Equal(decimal.NewFromInt(850)) && req.Name == nil
	})).Return(def, plan, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/recurring/rec-1", gin.H{"amount": "850"})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.RecurringMutationResponse
	suite.decode(w, &body)
	suite.Equal(3, body.InstancesCreated)
	suite.Equal(3, body.InstancesDeleted)
	suite.True(decimal.NewFromInt(-850).Equal(body.Definition.Amount))
}

func (suite *HandlerTestSuite) TestUpdateRecurring_NotFound() {
	suite.mockRecurringService.On("UpdateRecurring", mock.Anything, suite.userID, "ghost", mock.Anything).
		Return(nil, recurrence.Plan{}, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodPatch, "/api/v1/recurring/ghost", gin.H{"name": "X"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteRecurring() {
	suite.mockRecurringService.On("DeleteRecurring", mock.Anything, suite.userID, "rec-1").Return(12, nil).Once()
	suite.mockRecurringService.On("DeleteRecurring", mock.Anything, suite.userID, "ghost").Return(0, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodDelete, "/api/v1/recurring/rec-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.DeleteRecurringResponse
	suite.decode(w, &body)
	suite.Equal(12, body.InstancesDeleted)

	w = suite.do(http.MethodDelete, "/api/v1/recurring/ghost", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAndGenerateRecurring() {
	created := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	def := rentDef()
	def.CreatedAt = created
	suite.mockRecurringService.On("ListRecurring", mock.Anything, suite.userID).Return([]domain.RecurringDefinition{*def}, nil).Once()
	suite.mockRecurringService.On("GenerateAll", mock.Anything, suite.userID).Return(4, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/recurring", nil)
	suite.Equal(http.StatusOK, w.Code)
	var list []dto.RecurringResponse
	suite.decode(w, &list)
	suite.Require().Len(list, 1)
	suite.True(created.Equal(list[0].CreatedAt))

	w = suite.do(http.MethodPost, "/api/v1/recurring/generate", nil)
	suite.Equal(http.StatusOK, w.Code)
	var gen dto.GenerateResponse
	suite.decode(w, &gen)
	suite.Equal(4, gen.InstancesCreated)
	suite.mockRecurringService.AssertExpectations(suite.T())
}
