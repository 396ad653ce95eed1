package services

import (
	"context"

	"github.com/SscSPs/money_forecast/internal/core/domain"
)

// ForecastSvcFacade exposes the balance reconciler.
type ForecastSvcFacade interface {
	// GetDashboard computes per-account stats and totals for period.
	GetDashboard(ctx context.Context, userID string, period domain.Period) (*domain.Dashboard, error)

	// RunRollover carries opening balances into the current year if not done yet.
	RunRollover(ctx context.Context, userID string) (*domain.RolloverResult, error)

	// GetState returns the whole state document.
	GetState(ctx context.Context, userID string) (*domain.UserState, error)
}
