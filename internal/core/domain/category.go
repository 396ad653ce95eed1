package domain

// CategoryKind groups categories by the direction of money they describe.
type CategoryKind string

const (
	IncomeCategory  CategoryKind = "income"
	ExpenseCategory CategoryKind = "expense"
	SavingsCategory CategoryKind = "savings"
)

// Category is a user-visible label for transactions.
type Category struct {
	Name string       `json:"name"`
	Kind CategoryKind `json:"kind"`
}

// IsOutflow is true for categories whose amounts leave the account.
func (c Category) IsOutflow() bool {
	return c.Kind == ExpenseCategory || c.Kind == SavingsCategory
}

// DefaultCategories seeds a new user's document.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Salaire", Kind: IncomeCategory},
		{Name: "Autres revenus", Kind: IncomeCategory},
		{Name: "Logement", Kind: ExpenseCategory},
		{Name: "Alimentation", Kind: ExpenseCategory},
		{Name: "Transport", Kind: ExpenseCategory},
		{Name: "Abonnements", Kind: ExpenseCategory},
		{Name: "Loisirs", Kind: ExpenseCategory},
		{Name: "Santé", Kind: ExpenseCategory},
		{Name: "Impôts", Kind: ExpenseCategory},
		{Name: "Divers", Kind: ExpenseCategory},
		{Name: "Épargne", Kind: SavingsCategory},
	}
}
