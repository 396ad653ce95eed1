package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
)

type forecastService struct {
	BaseService
	store *StateStore
}

// NewForecastService creates the service exposing balances and the annual rollover.
func NewForecastService(store *StateStore) portssvc.ForecastSvcFacade {
	return &forecastService{store: store}
}

var _ portssvc.ForecastSvcFacade = (*forecastService)(nil)

func (s *forecastService) GetDashboard(ctx context.Context, userID string, period domain.Period) (*domain.Dashboard, error) {
	st, err := s.store.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	d := s.store.Reconciler().Dashboard(st, s.resolvePeriod(period))
	return &d, nil
}

// resolvePeriod fills a zero year or month with the current one.
func (s *forecastService) resolvePeriod(p domain.Period) domain.Period {
	now := s.store.Now()
	if p.Kind == "" {
		p.Kind = domain.MonthPeriod
	}
	if p.Year == 0 {
		p.Year = now.Year()
	}
	if p.Kind == domain.MonthPeriod && p.Month == 0 {
		p.Month = now.Month()
	}
	if p.Kind == domain.YearPeriod {
		p.Month = 0
	}
	return p
}

func (s *forecastService) RunRollover(ctx context.Context, userID string) (*domain.RolloverResult, error) {
	var res domain.RolloverResult
	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		now := s.store.Now()
		recurrence.PromoteDue(st.Transactions, now)
		res = s.store.Reconciler().Rollover(st, now)
		if res.Applied {
			fresh := s.store.Generator().Generate(st, st.RecurringDefinitions)
			st.Transactions = append(st.Transactions, fresh...)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to run rollover", slog.String("user_id", userID))
		return nil, err
	}
	if res.Applied {
		s.LogInfo(ctx, "Rollover applied",
			slog.Int("year", res.Year),
			slog.Int("accounts_adjusted", len(res.Adjustments)))
	}
	return &res, nil
}

func (s *forecastService) GetState(ctx context.Context, userID string) (*domain.UserState, error) {
	return s.store.Current(ctx, userID)
}
