package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/core/patterns"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/dto"
)

// Categories used when an accepted candidate carries no category of its own.
const (
	fallbackExpenseCategory = "Divers"
	fallbackIncomeCategory  = "Autres revenus"
)

type candidateService struct {
	BaseService
	store    *StateStore
	detector *patterns.Detector
}

// NewCandidateService creates the service surfacing detected recurring patterns.
func NewCandidateService(store *StateStore) portssvc.CandidateSvcFacade {
	return &candidateService{store: store, detector: patterns.NewDetector()}
}

var _ portssvc.CandidateSvcFacade = (*candidateService)(nil)

// surfaced runs detection, deduplication against declared definitions and the
// dismissal filter on st.
func (s *candidateService) surfaced(st *domain.UserState) []domain.RecurrenceCandidate {
	found := s.detector.Detect(st.Transactions)
	unique := patterns.Deduplicate(found, st.RecurringDefinitions)
	return patterns.WithoutDismissed(unique, st)
}

func (s *candidateService) ListCandidates(ctx context.Context, userID string) ([]domain.RecurrenceCandidate, error) {
	st, err := s.store.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidates := s.surfaced(st)
	s.LogDebug(ctx, "Recurring candidates detected",
		slog.String("user_id", userID),
		slog.Int("count", len(candidates)))
	return candidates, nil
}

func findCandidate(candidates []domain.RecurrenceCandidate, id string) (domain.RecurrenceCandidate, error) {
	idx := slices.IndexFunc(candidates, func(c domain.RecurrenceCandidate) bool { return c.ID == id })
	if idx < 0 {
		return domain.RecurrenceCandidate{}, fmt.Errorf("%w: candidate %s", apperrors.ErrNotFound, id)
	}
	return candidates[idx], nil
}

func (s *candidateService) AcceptCandidate(ctx context.Context, userID string, candidateID string, req dto.AcceptCandidateRequest) (*domain.RecurringDefinition, int, error) {
	var (
		def     domain.RecurringDefinition
		created int
	)
	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		c, err := findCandidate(s.surfaced(st), candidateID)
		if err != nil {
			return err
		}
		def, err = s.definitionFrom(c, req, userID)
		if err != nil {
			return err
		}
		def, created, err = addDefinition(st, def, s.store.Generator())
		if err != nil {
			return err
		}
		// an edited name or amount may no longer match the candidate
		if !st.IsDismissed(c.Key) {
			st.DismissedCandidateKeys = append(st.DismissedCandidateKeys, c.Key)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to accept candidate",
			slog.String("user_id", userID),
			slog.String("candidate_id", candidateID))
		return nil, 0, err
	}

	s.LogInfo(ctx, "Candidate accepted",
		slog.String("candidate_id", candidateID),
		slog.String("definition_id", def.ID),
		slog.Int("instances_created", created))
	return &def, created, nil
}

func (s *candidateService) definitionFrom(c domain.RecurrenceCandidate, req dto.AcceptCandidateRequest, userID string) (domain.RecurringDefinition, error) {
	def := domain.RecurringDefinition{
		ID:            s.store.NewID(),
		Name:          c.RepresentativeName,
		Amount:        c.SignedAmount(),
		Category:      c.DominantCategory,
		Frequency:     c.EstimatedFrequency,
		SourceAccount: c.DominantAccount,
		Kind:          domain.Normal,
		AuditFields:   domain.NewAuditFields(userID, s.store.Now()),
	}
	if n := len(c.ObservedDates); n > 0 {
		def.DayOfMonth = c.ObservedDates[n-1].Day()
	}
	if def.Category == "" {
		def.Category = fallbackExpenseCategory
		if c.IsIncome {
			def.Category = fallbackIncomeCategory
		}
	}

	if req.Name != nil {
		def.Name = *req.Name
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

	if def.Frequency == domain.CustomFrequency {
		return def, fmt.Errorf("%w: candidate repeats every %d days, choose a frequency", apperrors.ErrValidation, c.IntervalDays)
	}
	return def, nil
}

func (s *candidateService) DismissCandidate(ctx context.Context, userID string, candidateID string) error {
	_, err := s.store.Commit(ctx, userID, func(st *domain.UserState) error {
		c, err := findCandidate(s.surfaced(st), candidateID)
		if err != nil {
			return err
		}
		st.DismissedCandidateKeys = append(st.DismissedCandidateKeys, c.Key)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to dismiss candidate",
			slog.String("user_id", userID),
			slog.String("candidate_id", candidateID))
		return err
	}
	s.LogInfo(ctx, "Candidate dismissed", slog.String("candidate_id", candidateID))
	return nil
}
