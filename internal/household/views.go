package household

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/homekeep/internal/model"
)

// Suggestion texts.
const (
	SuggestionNearBudget    = "Warning: You're close to exceeding your budget! Reduce non-essential expenses."
	SuggestionBulkGrocery   = "Buy groceries in bulk to save money."
	SuggestionPremiumStore  = "Premium Tip: Shop at [Local Store] this week for 5% off on groceries."
	SuggestionPremiumExport = "Premium Report: Export your monthly expenses for better planning."
	SuggestionAllGood       = "All good! Keep managing your budget wisely."
)

// Outstanding sums the amounts of unpaid expenses.
func (h *Household) Outstanding() decimal.Decimal {
	total := decimal.Zero
	for _, e := range h.expenses {
		if !e.IsPaid() {
			total = total.Add(e.Amount())
		}
	}
	return total
}

// TotalExpenses sums the amounts of all expenses, paid or not.
func (h *Household) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range h.expenses {
		total = total.Add(e.Amount())
	}
	return total
}

// Suggestions returns advice derived from the current state. The result
// is never empty. Only unpaid expenses count toward the budget warning.
func (h *Household) Suggestions(premium bool) []string {
	var out []string

	if h.Outstanding().GreaterThan(h.budget.Mul(h.nearBudgetRatio)) {
		out = append(out, SuggestionNearBudget)
	}

	for _, e := range h.expenses {
		if e.Category() == model.CategoryGrocery {
			out = append(out, SuggestionBulkGrocery)
			break
		}
	}

	if premium {
		out = append(out, SuggestionPremiumStore, SuggestionPremiumExport)
	}

	if len(out) == 0 {
		return []string{SuggestionAllGood}
	}
	return out
}

// Status renders the household as lines: a summary, every expense, every
// task and the grocery list. The summary total includes paid expenses.
func (h *Household) Status() []string {
	lines := make([]string, 0, len(h.expenses)+len(h.tasks)+4)
	lines = append(lines, fmt.Sprintf("Household: %s | Budget: %s | Total Expenses: %s",
		h.name, model.FormatAmount(h.currency, h.budget), model.FormatAmount(h.currency, h.TotalExpenses())))

	lines = append(lines, "Expenses:")
	for _, e := range h.expenses {
		lines = append(lines, e.DetailsIn(h.currency))
	}

	lines = append(lines, "Tasks:")
	for _, t := range h.tasks {
		lines = append(lines, t.Details())
	}

	groceries := "Empty"
	if len(h.groceries) > 0 {
		groceries = strings.Join(h.groceries, ", ")
	}
	lines = append(lines, "Grocery List: "+groceries)

	return lines
}
