package session

import (
	"fmt"
	"strings"
)

// Kind enumerates the actions a user can take.
type Kind int

const (
	CreateHousehold Kind = iota + 1
	SetBudget
	AddExpense
	PayExpense
	AddTask
	CompleteTask
	AddGrocery
	RemoveGrocery
	Suggestions
	Status
	SetPremium
	Export
)

var kindNames = map[Kind]string{
	CreateHousehold: "create-household",
	SetBudget:       "set-budget",
	AddExpense:      "add-expense",
	PayExpense:      "pay-expense",
	AddTask:         "add-task",
	CompleteTask:    "complete-task",
	AddGrocery:      "add-grocery",
	RemoveGrocery:   "remove-grocery",
	Suggestions:     "suggestions",
	Status:          "status",
	SetPremium:      "set-premium",
	Export:          "export",
}

var kindTitles = map[Kind]string{
	CreateHousehold: "Create household",
	SetBudget:       "Set budget",
	AddExpense:      "Add expense",
	PayExpense:      "Mark expense paid",
	AddTask:         "Add task",
	CompleteTask:    "Mark task completed",
	AddGrocery:      "Add grocery item",
	RemoveGrocery:   "Remove grocery item",
	Suggestions:     "Smart suggestions",
	Status:          "Household status",
	SetPremium:      "Premium tier",
	Export:          "Export report",
}

// Kinds returns every command in menu order.
func Kinds() []Kind {
	return []Kind{
		CreateHousehold, SetBudget, AddExpense, PayExpense, AddTask, CompleteTask,
		AddGrocery, RemoveGrocery, Suggestions, Status, SetPremium, Export,
	}
}

// String returns the kebab-case command name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title returns the menu label.
func (k Kind) Title() string {
	if title, ok := kindTitles[k]; ok {
		return title
	}
	return k.String()
}

// NeedsHousehold reports whether the command acts on an existing household.
func (k Kind) NeedsHousehold() bool {
	return k != CreateHousehold && k != SetPremium
}

// ParseKind looks up a command by its kebab-case name.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}

// Request carries the raw field values of one form submission. Fields
// not used by the command are ignored.
type Request struct {
	Kind     Kind
	Name     string // household, expense or task name; selection for pay/complete
	Amount   string
	Category string
	Priority string
	Item     string
	Premium  bool
}

// Outcome classifies a Result for rendering.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeInfo    Outcome = "info"
)

// Result is what the shell shows after a command.
type Result struct {
	Kind    Kind
	Outcome Outcome
	Message string
	Lines   []string
}

func success(msg string) Result { return Result{Outcome: OutcomeSuccess, Message: msg} }

func warning(msg string) Result { return Result{Outcome: OutcomeWarning, Message: msg} }

func warningf(format string, args ...any) Result { return warning(fmt.Sprintf(format, args...)) }
