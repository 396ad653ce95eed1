package dto

import "github.com/SscSPs/money_forecast/internal/core/domain"

// DashboardParams selects the forecast period. Month is ignored for yearly views.
type DashboardParams struct {
	Period string `form:"period,default=month" binding:"oneof=month year"`
	Year   int    `form:"year" binding:"omitempty,min=1970,max=9999"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
}

// DashboardResponse is the forecast-vs-actual view.
type DashboardResponse = domain.Dashboard

// RolloverResponse reports an annual rollover run.
type RolloverResponse = domain.RolloverResult
