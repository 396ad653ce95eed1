package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestGetDashboard_DefaultPeriod() {
	dashboard := &domain.Dashboard{
		Period: domain.Period{Kind: domain.MonthPeriod, Year: 2025, Month: time.March},
		Accounts: []domain.AccountStats{{
			AccountID:       "chk",
			CurrentBalance:  decimal.NewFromInt(940),
			ForecastBalance: decimal.NewFromInt(895),
		}},
		Totals: domain.DashboardTotals{CurrentBalance: decimal.NewFromInt(940)},
	}
	suite.mockForecastService.On("GetDashboard", mock.Anything, suite.userID, domain.Period{Kind: domain.MonthPeriod}).
		Return(dashboard, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body domain.Dashboard
	suite.decode(w, &body)
	suite.Equal(time.March, body.Period.Month)
	suite.Require().Len(body.Accounts, 1)
	suite.True(decimal.NewFromInt(895).Equal(body.Accounts[0].ForecastBalance))
	suite.mockForecastService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetDashboard_ExplicitPeriod() {
	suite.mockForecastService.On("GetDashboard", mock.Anything, suite.userID,
		domain.Period{Kind: domain.YearPeriod, Year: 2024}).Return(&domain.Dashboard{}, nil).Once()
	suite.mockForecastService.On("GetDashboard", mock.Anything, suite.userID,
		domain.Period{Kind: domain.MonthPeriod, Year: 2025, Month: time.June}).Return(&domain.Dashboard{}, nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/dashboard?period=year&year=2024", nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/dashboard?period=month&year=2025&month=6", nil).Code)
	suite.mockForecastService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetDashboard_InvalidQuery() {
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/dashboard?period=week", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/dashboard?month=13", nil).Code)
	suite.mockForecastService.AssertNotCalled(suite.T(), "GetDashboard", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRunRollover() {
	res := &domain.RolloverResult{Year: 2025, Applied: true, Adjustments: map[string]decimal.Decimal{"chk": decimal.NewFromInt(300)}}
	suite.mockForecastService.On("RunRollover", mock.Anything, suite.userID).Return(res, nil).Once()
	suite.mockForecastService.On("RunRollover", mock.Anything, suite.userID).Return(nil, apperrors.ErrConflict).Once()

	w := suite.do(http.MethodPost, "/api/v1/rollover", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body domain.RolloverResult
	suite.decode(w, &body)
	suite.True(body.Applied)
	suite.True(decimal.NewFromInt(300).Equal(body.Adjustments["chk"]))

	suite.Equal(http.StatusConflict, suite.do(http.MethodPost, "/api/v1/rollover", nil).Code)
}

func (suite *HandlerTestSuite) TestGetState() {
	st := domain.NewUserState(suite.userID, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	suite.mockForecastService.On("GetState", mock.Anything, suite.userID).Return(st, nil).Once()
	suite.mockForecastService.On("GetState", mock.Anything, suite.userID).Return(nil, assert.AnError).Once()

	w := suite.do(http.MethodGet, "/api/v1/state", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body domain.UserState
	suite.decode(w, &body)
	suite.Equal(2025, body.LastRolloverYear)

	suite.Equal(http.StatusInternalServerError, suite.do(http.MethodGet, "/api/v1/state", nil).Code)
}

func (suite *HandlerTestSuite) TestSync() {
	summary := &domain.ImportSummary{Fetched: 4, Imported: 2, Duplicates: 1, Unmatched: 1}
	since := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	suite.mockImportService.On("SyncBankTransactions", mock.Anything, suite.userID, mock.MatchedBy(func(t time.Time) bool {
		return t.Equal(since)
	})).Return(summary, nil).Once()
	suite.mockImportService.On("SyncBankTransactions", mock.Anything, suite.userID, time.Time{}).
		Return(nil, assert.AnError).Once()

	w := suite.do(http.MethodPost, "/api/v1/sync", gin.H{"since": since.Format(time.RFC3339)})
	suite.Equal(http.StatusOK, w.Code)
	var body domain.ImportSummary
	suite.decode(w, &body)
	suite.Equal(*summary, body)

	suite.Equal(http.StatusBadGateway, suite.do(http.MethodPost, "/api/v1/sync", nil).Code)
	suite.mockImportService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestSync_NotConfigured() {
	router := gin.New()
	handlers.RegisterSyncRoutes(router.Group("/api/v1"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotImplemented, w.Code)
}
