// Package household implements the Household aggregate: a budget figure,
// the expenses and tasks it owns, a grocery list, and the suggestion and
// status views computed from them.
package household

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/homekeep/internal/id"
	"github.com/cleared-dev/homekeep/internal/model"
)

// DefaultNearBudgetRatio is the share of the budget that outstanding
// expenses may reach before a warning is suggested.
var DefaultNearBudgetRatio = decimal.RequireFromString("0.8")

// Option customizes a Household.
type Option func(*Household)

// WithCurrency sets the currency label used in messages.
func WithCurrency(currency string) Option {
	return func(h *Household) {
		if currency != "" {
			h.currency = currency
		}
	}
}

// WithNearBudgetRatio overrides the warning threshold. Non-positive values are ignored.
func WithNearBudgetRatio(ratio decimal.Decimal) Option {
	return func(h *Household) {
		if ratio.IsPositive() {
			h.nearBudgetRatio = ratio
		}
	}
}

// Household owns a budget, expenses, tasks and a grocery list.
// It is not safe for concurrent use; each session owns its own instance.
type Household struct {
	id              string
	name            string
	budget          decimal.Decimal
	expenses        []*model.Expense
	tasks           []*model.Task
	groceries       []string
	currency        string
	nearBudgetRatio decimal.Decimal
}

// New creates an empty household with a zero budget.
func New(name string, opts ...Option) *Household {
	h := &Household{
		id:              id.New(),
		name:            name,
		budget:          decimal.Zero,
		currency:        model.DefaultCurrency,
		nearBudgetRatio: DefaultNearBudgetRatio,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ID returns the household identifier.
func (h *Household) ID() string { return h.id }

// Name returns the household name.
func (h *Household) Name() string { return h.name }

// Budget returns the current budget.
func (h *Household) Budget() decimal.Decimal { return h.budget }

// Currency returns the currency label.
func (h *Household) Currency() string { return h.currency }

// Expenses returns the expenses in insertion order. The slice is a copy.
func (h *Household) Expenses() []*model.Expense {
	return append([]*model.Expense(nil), h.expenses...)
}

// Tasks returns the tasks in insertion order. The slice is a copy.
func (h *Household) Tasks() []*model.Task {
	return append([]*model.Task(nil), h.tasks...)
}

// Groceries returns the grocery list. The slice is a copy.
func (h *Household) Groceries() []string {
	return append([]string(nil), h.groceries...)
}

// SetBudget overwrites the budget. Negative amounts are rejected and
// leave the budget unchanged.
func (h *Household) SetBudget(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("budget %s: %w", amount, model.ErrNegativeAmount)
	}
	h.budget = amount
	return "Budget set to " + model.FormatAmount(h.currency, h.budget), nil
}

// AddExpense appends an expense. No deduplication is done.
func (h *Household) AddExpense(e *model.Expense) string {
	h.expenses = append(h.expenses, e)
	return "Added expense: " + e.Name()
}

// AddTask appends a task.
func (h *Household) AddTask(t *model.Task) string {
	h.tasks = append(h.tasks, t)
	return "Added task: " + t.Name()
}

// AddGroceryItem appends an item to the grocery list. Duplicates are kept.
func (h *Household) AddGroceryItem(item string) string {
	h.groceries = append(h.groceries, item)
	return "Added to grocery list: " + item
}

// RemoveGroceryItem removes the first entry equal to item and reports
// whether one was found. The list is unchanged when it is not.
func (h *Household) RemoveGroceryItem(item string) (string, bool) {
	for i, g := range h.groceries {
		if g == item {
			h.groceries = append(h.groceries[:i], h.groceries[i+1:]...)
			return "Removed from grocery list: " + item, true
		}
	}
	return item + " not found in grocery list!", false
}

// UnpaidExpenses returns the expenses not yet paid, in insertion order.
func (h *Household) UnpaidExpenses() []*model.Expense {
	var out []*model.Expense
	for _, e := range h.expenses {
		if !e.IsPaid() {
			out = append(out, e)
		}
	}
	return out
}

// PendingTasks returns the tasks not yet completed, in insertion order.
func (h *Household) PendingTasks() []*model.Task {
	var out []*model.Task
	for _, t := range h.tasks {
		if !t.IsCompleted() {
			out = append(out, t)
		}
	}
	return out
}

// FindUnpaidExpense returns the first unpaid expense named ref. When no
// name matches, ref is tried as an ID prefix.
func (h *Household) FindUnpaidExpense(ref string) (*model.Expense, bool) {
	unpaid := h.UnpaidExpenses()
	for _, e := range unpaid {
		if e.Name() == ref {
			return e, true
		}
	}
	for _, e := range unpaid {
		if id.HasPrefix(e.ID(), ref) {
			return e, true
		}
	}
	return nil, false
}

// FindPendingTask returns the first pending task named ref, falling back
// to an ID prefix match.
func (h *Household) FindPendingTask(ref string) (*model.Task, bool) {
	pending := h.PendingTasks()
	for _, t := range pending {
		if t.Name() == ref {
			return t, true
		}
	}
	for _, t := range pending {
		if id.HasPrefix(t.ID(), ref) {
			return t, true
		}
	}
	return nil, false
}
