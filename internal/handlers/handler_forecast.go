package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/SscSPs/money_forecast/internal/middleware"
	"github.com/gin-gonic/gin"
)

type forecastHandler struct {
	forecastService portssvc.ForecastSvcFacade
}

// RegisterForecastRoutes registers the dashboard, rollover and state routes.
func RegisterForecastRoutes(rg *gin.RouterGroup, forecastService portssvc.ForecastSvcFacade) {
	h := &forecastHandler{forecastService: forecastService}

	rg.GET("/dashboard", h.getDashboard)
	rg.POST("/rollover", h.runRollover)
	rg.GET("/state", h.getState)
}

// getDashboard godoc
// @Summary Forecast-vs-actual dashboard
// @Description Per-account balances for a month or a year, with realized and projected flows
// @Tags forecast
// @Produce  json
// @Param   period query string false "month or year" default(month)
// @Param   year query int false "Year, defaults to the current one"
// @Param   month query int false "Month 1-12, defaults to the current one"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *forecastHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for Dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period := domain.Period{
		Kind:  domain.PeriodKind(params.Period),
		Year:  params.Year,
		Month: time.Month(params.Month),
	}
	dashboard, err := h.forecastService.GetDashboard(c.Request.Context(), userID, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// runRollover godoc
// @Summary Run the annual rollover
// @Description Carries each account's closing balance into the current year's opening balance. Runs at most once per account and year.
// @Tags forecast
// @Produce  json
// @Success 200 {object} dto.RolloverResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 500 {object} map[string]string "Failed to run rollover"
// @Security BearerAuth
// @Router /rollover [post]
func (h *forecastHandler) runRollover(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res, err := h.forecastService.RunRollover(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to run rollover", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run rollover"})
		return
	}

	logger.Info("Rollover run", slog.Bool("applied", res.Applied), slog.Int("year", res.Year))
	c.JSON(http.StatusOK, res)
}

// getState godoc
// @Summary Export the state document
// @Description Returns the whole persisted state after housekeeping
// @Tags forecast
// @Produce  json
// @Success 200 {object} domain.UserState
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load state"
// @Security BearerAuth
// @Router /state [get]
func (h *forecastHandler) getState(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	st, err := h.forecastService.GetState(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load state"})
		return
	}
	c.JSON(http.StatusOK, st)
}
