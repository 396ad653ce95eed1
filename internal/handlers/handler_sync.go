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

type syncHandler struct {
	importService portssvc.ImportSvcFacade
}

// RegisterSyncRoutes registers the bank synchronization route. When importService is
// nil the route answers 501 so clients can tell sync is not configured.
func RegisterSyncRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvcFacade) {
	h := &syncHandler{importService: importService}
	rg.POST("/sync", h.syncBank)
}

// syncBank godoc
// @Summary Synchronize bank transactions
// @Description Fetches movements from the aggregation provider and stores the ones not seen before
// @Tags sync
// @Accept  json
// @Produce  json
// @Param   request body dto.SyncRequest false "Lower bound of the fetch"
// @Success 200 {object} domain.ImportSummary
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 501 {object} map[string]string "Bank synchronization not configured"
// @Failure 502 {object} map[string]string "Provider error"
// @Security BearerAuth
// @Router /sync [post]
func (h *syncHandler) syncBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if h.importService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Bank synchronization is not configured"})
		return
	}

	var req dto.SyncRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for Sync", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.importService.SyncBankTransactions(c.Request.Context(), userID, req.Since)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Bank synchronization failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Bank synchronization failed"})
		return
	}

	logger.Info("Bank synchronization completed",
		slog.Int("fetched", summary.Fetched),
		slog.Int("imported", summary.Imported),
		slog.Int("duplicates", summary.Duplicates),
		slog.Int("unmatched", summary.Unmatched))
	c.JSON(http.StatusOK, summary)
}
