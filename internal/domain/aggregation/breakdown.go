package aggregation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
)

// DefaultHabitCategories is the fixed set habit breakdowns report on.
var DefaultHabitCategories = []string{
	"Health", "Fitness", "Learning", "Productivity", "Mindfulness", "Social", "Other",
}

// DefaultExpenseCategories is the fixed set budget breakdowns report on.
var DefaultExpenseCategories = []string{
	"Food", "Transport", "Housing", "Utilities", "Shopping",
	"Entertainment", "Health", "Education", "Other",
}

var hundred = decimal.NewFromInt(100)

// CategoryPercentage is one row of a category breakdown.
type CategoryPercentage struct {
	Category    string
	Numerator   decimal.Decimal // Completed entries or amount spent
	Denominator decimal.Decimal // Logged entries or spending limit
	Percentage  int
}

// Percentage returns round(100 * num / den), or 0 when den is zero.
func Percentage(num, den decimal.Decimal) int {
	if den.IsZero() {
		return 0
	}
	return int(num.Mul(hundred).Div(den).Round(0).IntPart())
}

// HabitBreakdown reports, for every category, the share of logged habit
// entries that were completed. Entries outside the set are ignored.
func HabitBreakdown(completions []entity.HabitCompletion, categories []string) []CategoryPercentage {
	out := make([]CategoryPercentage, 0, len(categories))
	for _, c := range categories {
		in := InCategory[entity.HabitCompletion](c)
		completed := SumByKind(completions, in)
		possible := decimal.NewFromInt(int64(CountWhere(completions, in)))
		out = append(out, CategoryPercentage{
			Category:    c,
			Numerator:   completed,
			Denominator: possible,
			Percentage:  Percentage(completed, possible),
		})
	}
	return out
}

// BudgetBreakdown reports, for every category, the expense total as a share
// of the category limit. limits is keyed by category, case-insensitively;
// categories without a limit report zero percent.
func BudgetBreakdown(
	records []entity.Transaction,
	limits map[string]decimal.Decimal,
	categories []string,
) []CategoryPercentage {
	normalized := make(map[string]decimal.Decimal, len(limits))
	for k, v := range limits {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}

	isExpense := OfKind[entity.Transaction](string(entity.TransactionKindExpense))

	out := make([]CategoryPercentage, 0, len(categories))
	for _, c := range categories {
		spent := SumByKind(records, And(isExpense, InCategory[entity.Transaction](c)))
		limit, ok := normalized[strings.ToLower(strings.TrimSpace(c))]
		if !ok {
			limit = decimal.Zero
		}
		out = append(out, CategoryPercentage{
			Category:    c,
			Numerator:   spent,
			Denominator: limit,
			Percentage:  Percentage(spent, limit),
		})
	}
	return out
}
