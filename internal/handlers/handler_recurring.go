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

type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

// RegisterRecurringRoutes registers routes for recurring definitions and generation.
func RegisterRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := &recurringHandler{recurringService: recurringService}

	recurring := rg.Group("/recurring")
	{
		recurring.GET("", h.listRecurring)
		recurring.POST("", h.createRecurring)
		recurring.POST("/generate", h.generateAll)
		recurring.PATCH("/:id", h.updateRecurring)
		recurring.DELETE("/:id", h.deleteRecurring)
	}
}

// recurringErrorStatus maps service errors to HTTP status codes.
func recurringErrorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// listRecurring godoc
// @Summary List recurring definitions
// @Tags recurring
// @Produce  json
// @Success 200 {array} dto.RecurringResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list recurring definitions"
// @Security BearerAuth
// @Router /recurring [get]
func (h *recurringHandler) listRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	defs, err := h.recurringService.ListRecurring(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list recurring definitions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recurring definitions"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecurringResponse(defs))
}

// createRecurring godoc
// @Summary Declare a recurring definition
// @Description Stores the definition and generates its instances for the current year
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   definition body dto.CreateRecurringRequest true "Definition"
// @Success 201 {object} dto.RecurringMutationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 500 {object} map[string]string "Failed to create recurring definition"
// @Security BearerAuth
// @Router /recurring [post]
func (h *recurringHandler) createRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecurring", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	def, created, err := h.recurringService.CreateRecurring(c.Request.Context(), userID, req)
	if err != nil {
		status := recurringErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create recurring definition", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to create recurring definition"})
			return
		}
		logger.Warn("Rejected recurring definition", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Recurring definition created", slog.String("recurring_id", def.ID), slog.Int("instances_created", created))
	c.JSON(http.StatusCreated, dto.RecurringMutationResponse{
		Definition:       dto.ToRecurringResponse(def),
		InstancesCreated: created,
	})
}

// updateRecurring godoc
// @Summary Edit a recurring definition
// @Description Patches the definition and regenerates its instances in the same commit
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   id path string true "Recurring definition ID"
// @Param   patch body dto.UpdateRecurringRequest true "Fields to change"
// @Success 200 {object} dto.RecurringMutationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Definition not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 500 {object} map[string]string "Failed to update recurring definition"
// @Security BearerAuth
// @Router /recurring/{id} [patch]
func (h *recurringHandler) updateRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	var req dto.UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRecurring", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("recurring_id", id))
	def, plan, err := h.recurringService.UpdateRecurring(c.Request.Context(), userID, id, req)
	if err != nil {
		status := recurringErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update recurring definition", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to update recurring definition"})
			return
		}
		logger.Warn("Rejected recurring update", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Recurring definition updated",
		slog.Int("instances_created", len(plan.ToInsert)),
		slog.Int("instances_deleted", len(plan.ToDelete)))
	c.JSON(http.StatusOK, dto.RecurringMutationResponse{
		Definition:       dto.ToRecurringResponse(def),
		InstancesCreated: len(plan.ToInsert),
		InstancesDeleted: len(plan.ToDelete),
	})
}

// deleteRecurring godoc
// @Summary Delete a recurring definition
// @Description Removes the definition together with every instance it generated
// @Tags recurring
// @Produce  json
// @Param   id path string true "Recurring definition ID"
// @Success 200 {object} dto.DeleteRecurringResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Definition not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 500 {object} map[string]string "Failed to delete recurring definition"
// @Security BearerAuth
// @Router /recurring/{id} [delete]
func (h *recurringHandler) deleteRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	removed, err := h.recurringService.DeleteRecurring(c.Request.Context(), userID, id)
	if err != nil {
		status := recurringErrorStatus(err)
		if status == http.StatusNotFound {
			c.JSON(status, gin.H{"error": "Recurring definition not found"})
			return
		}
		if status == http.StatusInternalServerError {
			logger.Error("Failed to delete recurring definition", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to delete recurring definition"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Recurring definition deleted", slog.String("recurring_id", id), slog.Int("instances_deleted", removed))
	c.JSON(http.StatusOK, dto.DeleteRecurringResponse{InstancesDeleted: removed})
}

// generateAll godoc
// @Summary Generate missing instances
// @Description Fills the missing instances of every definition for the current year. Idempotent.
// @Tags recurring
// @Produce  json
// @Success 200 {object} dto.GenerateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 500 {object} map[string]string "Failed to generate instances"
// @Security BearerAuth
// @Router /recurring/generate [post]
func (h *recurringHandler) generateAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.recurringService.GenerateAll(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate instances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate instances"})
		return
	}

	logger.Info("Generation run completed", slog.Int("instances_created", created))
	c.JSON(http.StatusOK, dto.GenerateResponse{InstancesCreated: created})
}
