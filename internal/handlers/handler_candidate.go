package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/SscSPs/money_forecast/internal/middleware"
	"github.com/gin-gonic/gin"
)

type candidateHandler struct {
	candidateService portssvc.CandidateSvcFacade
}

// RegisterCandidateRoutes registers routes for detected recurring patterns.
func RegisterCandidateRoutes(rg *gin.RouterGroup, candidateService portssvc.CandidateSvcFacade) {
	h := &candidateHandler{candidateService: candidateService}

	candidates := rg.Group("/candidates")
	{
		candidates.GET("", h.listCandidates)
		candidates.POST("/:id/accept", h.acceptCandidate)
		candidates.POST("/:id/dismiss", h.dismissCandidate)
	}
}

// listCandidates godoc
// @Summary List recurring candidates
// @Description Patterns detected in bank history that no definition covers yet
// @Tags candidates
// @Produce  json
// @Success 200 {object} dto.ListCandidatesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to detect candidates"
// @Security BearerAuth
// @Router /candidates [get]
func (h *candidateHandler) listCandidates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	candidates, err := h.candidateService.ListCandidates(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to detect candidates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detect candidates"})
		return
	}
	c.JSON(http.StatusOK, dto.ListCandidatesResponse{Candidates: candidates})
}

// acceptCandidate godoc
// @Summary Accept a recurring candidate
// @Description Creates a recurring definition from the candidate, with optional overrides
// @Tags candidates
// @Accept  json
// @Produce  json
// @Param   id path string true "Candidate ID"
// @Param   overrides body dto.AcceptCandidateRequest false "Overrides"
// @Success 201 {object} dto.RecurringMutationResponse
// @Failure 400 {object} map[string]string "Validation error, e.g. a custom frequency without a choice"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Candidate not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 500 {object} map[string]string "Failed to accept candidate"
// @Security BearerAuth
// @Router /candidates/{id}/accept [post]
func (h *candidateHandler) acceptCandidate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	candidateID := c.Param("id")

	var req dto.AcceptCandidateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for AcceptCandidate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("candidate_id", candidateID))
	def, created, err := h.candidateService.AcceptCandidate(c.Request.Context(), userID, candidateID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to accept candidate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept candidate"})
		}
		return
	}

	logger.Info("Candidate accepted", slog.String("recurring_id", def.ID), slog.Int("instances_created", created))
	c.JSON(http.StatusCreated, dto.RecurringMutationResponse{
		Definition:       dto.ToRecurringResponse(def),
		InstancesCreated: created,
	})
}

// dismissCandidate godoc
// @Summary Dismiss a recurring candidate
// @Description The candidate will not be surfaced again
// @Tags candidates
// @Param   id path string true "Candidate ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Candidate not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 500 {object} map[string]string "Failed to dismiss candidate"
// @Security BearerAuth
// @Router /candidates/{id}/dismiss [post]
func (h *candidateHandler) dismissCandidate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	candidateID := c.Param("id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.candidateService.DismissCandidate(c.Request.Context(), userID, candidateID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to dismiss candidate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dismiss candidate"})
		}
		return
	}

	logger.Info("Candidate dismissed", slog.String("candidate_id", candidateID))
	c.Status(http.StatusNoContent)
}
