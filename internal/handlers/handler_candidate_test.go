package handlers_test

import (
	"net/http"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListCandidates() {
	candidates := []domain.RecurrenceCandidate{{
		ID:                 "cand_abc",
		Key:                "netflix com",
		RepresentativeName: "NETFLIX.COM",
		AverageAmount:      decimal.RequireFromString("15.99"),
		EstimatedFrequency: domain.Monthly,
		Occurrences:        3,
	}}
	suite.mockCandidateService.On("ListCandidates", mock.Anything, suite.userID).Return(candidates, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/candidates", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListCandidatesResponse
	suite.decode(w, &body)
	suite.Require().Len(body.Candidates, 1)
	suite.Equal("cand_abc", body.Candidates[0].ID)
	suite.Equal(3, body.Candidates[0].Occurrences)
}

func (suite *HandlerTestSuite) TestAcceptCandidate_WithoutBody() {
	def := &domain.RecurringDefinition{ID: "rec-9", Name: "NETFLIX.COM", Frequency: domain.Monthly, DayOfMonth: 10, Kind: domain.Normal}
	suite.mockCandidateService.On("AcceptCandidate", mock.Anything, suite.userID, "cand_abc", dto.AcceptCandidateRequest{}).
		Return(def, 12, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/candidates/cand_abc/accept", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.RecurringMutationResponse
	suite.decode(w, &body)
	suite.Equal("rec-9", body.Definition.ID)
	suite.Equal(12, body.InstancesCreated)
	suite.mockCandidateService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestAcceptCandidate_WithOverrides() {
	def := &domain.RecurringDefinition{ID: "rec-9", Name: "Netflix", Frequency: domain.Monthly, DayOfMonth: 12, Kind: domain.Normal}
	suite.mockCandidateService.On("AcceptCandidate", mock.Anything, suite.userID, "cand_abc", mock.MatchedBy(func(req dto.AcceptCandidateRequest) bool {
		return req.Name != nil && *req.Name == "Netflix" && req.DayOfMonth != nil && *req.DayOfMonth == 12 && req.Frequency == nil
	})).Return(def, 10, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/candidates/cand_abc/accept", gin.H{"name": "Netflix", "dayOfMonth": 12})

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockCandidateService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestAcceptCandidate_Errors() {
	w := suite.do(http.MethodPost, "/api/v1/candidates/cand_abc/accept", gin.H{"frequency": "hourly"})
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockCandidateService.On("AcceptCandidate", mock.Anything, suite.userID, "cand_gym", mock.Anything).
		Return(nil, 0, apperrors.ErrValidation).Once()
	suite.mockCandidateService.On("AcceptCandidate", mock.Anything, suite.userID, "cand_missing", mock.Anything).
		Return(nil, 0, apperrors.ErrNotFound).Once()

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/v1/candidates/cand_gym/accept", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodPost, "/api/v1/candidates/cand_missing/accept", nil).Code)
}

func (suite *HandlerTestSuite) TestDismissCandidate() {
	suite.mockCandidateService.On("DismissCandidate", mock.Anything, suite.userID, "cand_abc").Return(nil).Once()
	suite.mockCandidateService.On("DismissCandidate", mock.Anything, suite.userID, "cand_gone").Return(apperrors.ErrNotFound).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodPost, "/api/v1/candidates/cand_abc/dismiss", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodPost, "/api/v1/candidates/cand_gone/dismiss", nil).Code)
	suite.mockCandidateService.AssertExpectations(suite.T())
}
