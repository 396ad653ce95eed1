// Package categorizer assigns a category to a bank movement from keywords found in
// its description.
package categorizer

import (
	"fmt"
	"strings"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/utils/textnorm"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Fallback categories when no rule matches.
const (
	FallbackIncome  = "Autres revenus"
	FallbackExpense = "Divers"
)

// Rule maps keywords to a category. Direction restricts the rule to incoming
// ("income") or outgoing ("expense") amounts; empty matches both.
type Rule struct {
	Category  string   `mapstructure:"category"`
	Keywords  []string `mapstructure:"keywords"`
	Direction string   `mapstructure:"direction"`
}

// Categorizer applies rules in order; the first matching keyword wins.
type Categorizer struct {
	rules []compiledRule
}

type compiledRule struct {
	category  string
	keywords  []string // normalized, padded with spaces for whole-word matching
	direction string
}

// DefaultRules covers the usual French bank wording.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "Salaire", Keywords: []string{"salaire", "paie", "remuneration"}, Direction: "income"},
		{Category: "Épargne", Keywords: []string{"livret", "epargne", "assurance vie"}},
		{Category: "Impôts", Keywords: []string{"dgfip", "impot", "impots", "taxe fonciere", "taxe habitation"}},
		{Category: "Logement", Keywords: []string{"loyer", "edf", "engie", "eau", "syndic", "habitation"}},
		{Category: "Alimentation", Keywords: []string{"carrefour", "leclerc", "auchan", "lidl", "intermarche", "monoprix", "franprix", "picard", "boulangerie"}},
		{Category: "Transport", Keywords: []string{"sncf", "ratp", "navigo", "uber", "peage", "essence", "totalenergies"}},
		{Category: "Abonnements", Keywords: []string{"netflix", "spotify", "deezer", "disney", "canal", "free mobile", "orange", "sfr", "bouygues", "amazon prime"}},
		{Category: "Santé", Keywords: []string{"pharmacie", "medecin", "doctolib", "mutuelle", "dentiste"}},
		{Category: "Loisirs", Keywords: []string{"cinema", "fnac", "steam", "decathlon"}},
	}
}

// New compiles rules into a categorizer.
func New(rules []Rule) *Categorizer {
	c := &Categorizer{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		cr := compiledRule{category: r.Category, direction: strings.ToLower(r.Direction)}
		for _, kw := range r.Keywords {
			if n := textnorm.Normalize(kw); n != "" {
				cr.keywords = append(cr.keywords, " "+n+" ")
			}
		}
		if cr.category != "" && len(cr.keywords) > 0 {
			c.rules = append(c.rules, cr)
		}
	}
	return c
}

// NewDefault returns a categorizer with DefaultRules.
func NewDefault() *Categorizer {
	return New(DefaultRules())
}

// LoadRules reads a YAML (or any viper-supported) file of the form
//
//	rules:
//	  - category: Abonnements
//	    keywords: [netflix, spotify]
func LoadRules(path string) ([]Rule, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read categorizer rules %s: %w", path, err)
	}
	var rules []Rule
	if err := v.UnmarshalKey("rules", &rules); err != nil {
		return nil, fmt.Errorf("failed to parse categorizer rules %s: %w", path, err)
	}
	return rules, nil
}

// Categorize returns the category of the first rule whose keyword appears in the
// description, or a fallback depending on the amount's sign.
func (c *Categorizer) Categorize(description string, amount decimal.Decimal) string {
	text := " " + textnorm.Normalize(description) + " "
	for _, r := range c.rules {
		if !r.allows(amount) {
			continue
		}
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.category
			}
		}
	}
	if amount.IsPositive() {
		return FallbackIncome
	}
	return FallbackExpense
}

func (r compiledRule) allows(amount decimal.Decimal) bool {
	switch domain.CategoryKind(r.direction) {
	case domain.IncomeCategory:
		return amount.IsPositive()
	case domain.ExpenseCategory:
		return !amount.IsPositive()
	}
	return true
}
