package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
	"github.com/SscSPs/money_forecast/internal/dto"
	"github.com/SscSPs/money_forecast/internal/utils/accounting"
)

// recurringService implements the RecurringSvcFacade interface
type recurringService struct {
	BaseService
	store  *StateStore
	policy recurrence.RegenerationPolicy
}

// RecurringOption is a functional option for configuring the recurring service
type RecurringOption func(*recurringService)

// WithRegenerationPolicy sets what happens to realized history when a definition is edited.
func WithRegenerationPolicy(policy recurrence.RegenerationPolicy) RecurringOption {
	return func(s *recurringService) {
		s.policy = policy
	}
}

// NewRecurringService creates a new recurring service with the provided options
func NewRecurringService(store *StateStore, options ...RecurringOption) portssvc.RecurringSvcFacade {
	svc := &recurringService{store: store, policy: recurrence.DefaultPolicy}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

func (s *recurringService) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringDefinition, error) {
	st, err := s.store.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	return st.RecurringDefinitions, nil
}

func (s *recurringService) CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, int, error) {
	kind := req.Kind
	if kind == "" {
		kind = domain.Normal
	}
	def := domain.RecurringDefinition{
		ID:                 s.store.NewID(),
		Name:               strings.TrimSpace(req.Name),
		Amount:             req.Amount,
		Category:           req.Category,
		Frequency:          req.Frequency,
		DayOfMonth:         req.DayOfMonth,
		SourceAccount:      req.SourceAccount,
		DestinationAccount: req.DestinationAccount,
		Kind:               kind,
		AuditFields:        domain.NewAuditFields(userID, s.store.Now()),
	}

	var created int
	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		var err error
		def, created, err = addDefinition(st, def, s.store.Generator())
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create recurring definition",
			slog.String("user_id", userID),
			slog.String("name", def.Name))
		return nil, 0, err
	}

	s.LogInfo(ctx, "Recurring definition created",
		slog.String("definition_id", def.ID),
		slog.Int("instances_created", created))
	return &def, created, nil
}

func (s *recurringService) UpdateRecurring(ctx context.Context, userID string, id string, req dto.UpdateRecurringRequest) (*domain.RecurringDefinition, recurrence.Plan, error) {
	var (
		updated domain.RecurringDefinition
		plan    recurrence.Plan
	)
	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		idx := st.FindDefinition(id)
		if idx < 0 {
			return fmt.Errorf("%w: recurring definition %s", apperrors.ErrNotFound, id)
		}
		def := st.RecurringDefinitions[idx]
		applyRecurringPatch(&def, req)
		def.Touch(userID, s.store.Now())

		if err := prepareDefinition(st, &def); err != nil {
			return err
		}
		plan = s.store.Generator().Regenerate(st, def, s.policy)
		st.RecurringDefinitions[idx] = def
		recurrence.Apply(st, plan)
		updated = def
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update recurring definition",
			slog.String("user_id", userID),
			slog.String("definition_id", id))
		return nil, recurrence.Plan{}, err
	}

	s.LogInfo(ctx, "Recurring definition updated",
		slog.String("definition_id", id),
		slog.Int("instances_deleted", len(plan.ToDelete)),
		slog.Int("instances_inserted", len(plan.ToInsert)))
	return &updated, plan, nil
}

func (s *recurringService) DeleteRecurring(ctx context.Context, userID string, id string) (int, error) {
	var removed []string
	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		idx := st.FindDefinition(id)
		if idx < 0 {
			return fmt.Errorf("%w: recurring definition %s", apperrors.ErrNotFound, id)
		}
		st.RecurringDefinitions = append(st.RecurringDefinitions[:idx], st.RecurringDefinitions[idx+1:]...)
		st.Transactions, removed = recurrence.RemoveByOrigin(st.Transactions, id)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete recurring definition",
			slog.String("user_id", userID),
			slog.String("definition_id", id))
		return 0, err
	}

	s.LogInfo(ctx, "Recurring definition deleted",
		slog.String("definition_id", id),
		slog.Int("instances_deleted", len(removed)))
	return len(removed), nil
}

func (s *recurringService) GenerateAll(ctx context.Context, userID string) (int, error) {
	var created int
	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		fresh := s.store.Generator().Generate(st, st.RecurringDefinitions)
		st.Transactions = append(st.Transactions, fresh...)
		created = len(fresh)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate recurring instances", slog.String("user_id", userID))
		return 0, err
	}
	s.LogDebug(ctx, "Generated recurring instances", slog.Int("instances_created", created))
	return created, nil
}

// addDefinition validates def against st, appends it and generates its instances.
func addDefinition(st *domain.UserState, def domain.RecurringDefinition, gen *recurrence.Generator) (domain.RecurringDefinition, int, error) {
	if err := prepareDefinition(st, &def); err != nil {
		return def, 0, err
	}
	st.RecurringDefinitions = append(st.RecurringDefinitions, def)
	created := gen.Generate(st, []domain.RecurringDefinition{def})
	st.Transactions = append(st.Transactions, created...)
	return def, len(created), nil
}

// prepareDefinition normalizes the amount sign, then validates def and the accounts
// it references.
func prepareDefinition(st *domain.UserState, def *domain.RecurringDefinition) error {
	if !def.IsTransfer() {
		def.DestinationAccount = ""
	}
	categoryKind, _ := st.CategoryKindOf(def.Category)
	def.Amount = accounting.NormalizeAmountSign(def.Amount, def.Kind, categoryKind)

	if err := domain.ValidateDefinition(*def); err != nil {
		return err
	}
	for _, id := range []string{def.SourceAccount, def.DestinationAccount} {
		if id == "" {
			continue
		}
		if _, ok := st.FindAccount(id); !ok {
			return fmt.Errorf("%w: unknown account %s", apperrors.ErrValidation, id)
		}
	}
	return nil
}

func applyRecurringPatch(def *domain.RecurringDefinition, req dto.UpdateRecurringRequest) {
	if req.Name != nil {
		def.Name = strings.TrimSpace(*req.Name)
	}
	if req.Amount != nil {
		def.Amount = *req.Amount
	}
	if req.Category != nil {
		def.Category = *req.Category
	}
	if req.Frequency != nil {
		def.Frequency = *req.Frequency
	}
	if req.DayOfMonth != nil {
		def.DayOfMonth = *req.DayOfMonth
	}
	if req.SourceAccount != nil {
		def.SourceAccount = *req.SourceAccount
	}
	if req.DestinationAccount != nil {
		def.DestinationAccount = *req.DestinationAccount
	}
}
