package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListTransactions_PassesFilters() {
	txns := []domain.Transaction{
		{ID: "t2", AccountID: "chk", Amount: decimal.NewFromInt(-20), Status: domain.Upcoming, Kind: domain.Normal},
		{ID: "t1", AccountID: "chk", Amount: decimal.NewFromInt(-10), Status: domain.Upcoming, Kind: domain.Normal},
	}
	suite.mockTxnService.On("ListTransactions", mock.Anything, suite.userID, dto.ListTransactionsParams{
		Limit:     2,
		AccountID: "chk",
		Status:    domain.Upcoming,
	}).Return(txns, "next-page", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=2&accountID=chk&status=upcoming", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListTransactionsResponse
	suite.decode(w, &body)
	suite.Require().Len(body.Transactions, 2)
	suite.Equal("t2", body.Transactions[0].ID)
	suite.Equal("next-page", body.NextToken)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_DefaultLimit() {
	suite.mockTxnService.On("ListTransactions", mock.Anything, suite.userID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 50
	})).Return([]domain.Transaction{}, "", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_InvalidQuery() {
	for _, url := range []string{
		"/api/v1/transactions?limit=0",
		"/api/v1/transactions?limit=1000",
		"/api/v1/transactions?status=pending",
	} {
		w := suite.do(http.MethodGet, url, nil)
		suite.Equal(http.StatusBadRequest, w.Code, url)
	}

	suite.mockTxnService.On("ListTransactions", mock.Anything, suite.userID, mock.Anything).
		Return(nil, "", apperrors.ErrValidation).Once()
	w := suite.do(http.MethodGet, "/api/v1/transactions?nextToken=garbage", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTransfer_Success() {
	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	legs := []domain.Transaction{
		{ID: "out", AccountID: "chk", Amount: decimal.NewFromInt(-300), Kind: domain.Transfer, LinkedTransferID: "in", Status: domain.Realized, Date: day},
		{ID: "in", AccountID: "sav", Amount: decimal.NewFromInt(300), Kind: domain.Transfer, LinkedTransferID: "out", Status: domain.Realized, Date: day},
	}
	suite.mockTxnService.On("CreateTransfer", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.CreateTransferRequest) bool {
		return req.FromAccountID == "chk" && req.ToAccountID == "sav" &&
			req.Amount.Equal(decimal.NewFromInt(300)) && req.Date.Equal(day)
	})).Return(legs, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/transfers", gin.H{
		"fromAccountID": "chk",
		"toAccountID":   "sav",
		"amount":        "300",
		"date":          day.Format(time.RFC3339),
	})

	suite.Equal(http.StatusCreated, w.Code)
	var body []dto.TransactionResponse
	suite.decode(w, &body)
	suite.Require().Len(body, 2)
	suite.Equal("in", body[0].LinkedTransferID)
	suite.Equal(domain.Transfer, body[1].Kind)
}

func (suite *HandlerTestSuite) TestCreateTransfer_Rejected() {
	w := suite.do(http.MethodPost, "/api/v1/transactions/transfers", gin.H{
		"fromAccountID": "chk",
		"toAccountID":   "chk",
		"amount":        "10",
		"date":          "2025-03-01T00:00:00Z",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxnService.AssertNotCalled(suite.T(), "CreateTransfer", mock.Anything, mock.Anything, mock.Anything)

	suite.mockTxnService.On("CreateTransfer", mock.Anything, suite.userID, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()
	w = suite.do(http.MethodPost, "/api/v1/transactions/transfers", gin.H{
		"fromAccountID": "chk",
		"toAccountID":   "ghost",
		"amount":        "10",
		"date":          "2025-03-01T00:00:00Z",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTransaction() {
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, "in").Return([]string{"in", "out"}, nil).Once()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, "ghost").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, "busy").Return(nil, apperrors.ErrConflict).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/in", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.DeleteTransactionResponse
	suite.decode(w, &body)
	suite.ElementsMatch([]string{"in", "out"}, body.DeletedIDs)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/v1/transactions/ghost", nil).Code)
	suite.Equal(http.StatusConflict, suite.do(http.MethodDelete, "/api/v1/transactions/busy", nil).Code)
}
