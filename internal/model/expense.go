package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category classifies an expense. The set is open; these are the built-ins.
type Category string

const (
	CategoryGrocery Category = "Grocery"
	CategoryUtility Category = "Utility"
	CategoryOther   Category = "Other"
)

// Categories returns the built-in categories in menu order.
func Categories() []Category {
	return []Category{CategoryGrocery, CategoryUtility, CategoryOther}
}

// ParseCategory maps user input to a Category. Built-ins match
// case-insensitively; any other non-blank value is kept as a custom category.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyCategory
	}
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return Category(s), nil
}

var _ Item = (*Expense)(nil)

// Expense is a trackable cost owned by a household.
type Expense struct {
	itemBase
	amount   decimal.Decimal
	category Category
	paid     bool
}

// NewExpense creates an unpaid expense. Negative amounts are rejected.
func NewExpense(name string, amount decimal.Decimal, category Category, opts ...Option) (*Expense, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("expense %q: %w", name, ErrNegativeAmount)
	}
	return &Expense{
		itemBase: newItemBase(name, opts),
		amount:   amount,
		category: category,
	}, nil
}

// Amount returns the expense amount.
func (e *Expense) Amount() decimal.Decimal { return e.amount }

// Category returns the expense category.
func (e *Expense) Category() Category { return e.category }

// IsPaid reports whether the expense has been paid.
func (e *Expense) IsPaid() bool { return e.paid }

// MarkPaid flags the expense as paid. Paid is terminal: a second call
// changes nothing and says so.
func (e *Expense) MarkPaid() string {
	if e.paid {
		return fmt.Sprintf("%s is already paid", e.name)
	}
	e.paid = true
	return fmt.Sprintf("%s marked as paid!", e.name)
}

// Details returns a one-line summary.
func (e *Expense) Details() string {
	return e.DetailsIn(e.currency)
}

// DetailsIn is Details with the amount labelled in currency. A household
// uses it so every row matches its own currency.
func (e *Expense) DetailsIn(currency string) string {
	status := "Unpaid"
	if e.paid {
		status = "Paid"
	}
	return fmt.Sprintf("Expense: %s | Amount: %s | Category: %s | Status: %s | Date: %s",
		e.name, FormatAmount(currency, e.amount), e.category, status, e.created.Format(DateFormat))
}
