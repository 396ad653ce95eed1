package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Frequency is the cadence of a recurring definition or a detected pattern.
type Frequency string

const (
	Daily      Frequency = "daily"
	Weekly     Frequency = "weekly"
	Biweekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
	// CustomFrequency is only produced by pattern detection ("every N days").
	CustomFrequency Frequency = "custom"
)

var frequencyLabels = map[Frequency]string{
	Daily:      "Quotidienne",
	Weekly:     "Hebdomadaire",
	Biweekly:   "Toutes les 2 semaines",
	Monthly:    "Mensuelle",
	Quarterly:  "Trimestrielle",
	Semiannual: "Semestrielle",
	Annual:     "Annuelle",
}

// Label returns the display label shown next to a definition or candidate.
func (f Frequency) Label() string {
	if l, ok := frequencyLabels[f]; ok {
		return l
	}
	return string(f)
}

// CustomFrequencyLabel is the label of a CustomFrequency with the given interval.
func CustomFrequencyLabel(days int) string {
	return fmt.Sprintf("Tous les %d jours", days)
}

// RecurringDefinition is a user-declared rule for a repeating income, expense or transfer.
// For normal definitions Amount is signed (positive income, negative expense);
// for transfers it is always positive and the legs carry the sign.
type RecurringDefinition struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name" validate:"required"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category" validate:"required_if=Kind normal"`
	Frequency          Frequency       `json:"frequency" validate:"required,oneof=daily weekly biweekly monthly quarterly semiannual annual"`
	DayOfMonth         int             `json:"dayOfMonth" validate:"min=1,max=31"`
	SourceAccount      string          `json:"sourceAccount" validate:"required"`
	DestinationAccount string          `json:"destinationAccount,omitempty" validate:"required_if=Kind transfer"`
	Kind               TransactionKind `json:"kind" validate:"required,oneof=normal transfer"`
	AuditFields
}

func (d RecurringDefinition) IsTransfer() bool { return d.Kind == Transfer }

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDefinition checks the fields required by the definition's kind.
// The returned error wraps apperrors.ErrValidation.
func ValidateDefinition(d RecurringDefinition) error {
	if err := validate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, ", "))
		}
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if d.Amount.IsZero() {
		return fmt.Errorf("%w: amount must not be zero", apperrors.ErrValidation)
	}
	if d.IsTransfer() && d.SourceAccount == d.DestinationAccount {
		return fmt.Errorf("%w: transfer source and destination must differ", apperrors.ErrValidation)
	}
	return nil
}
