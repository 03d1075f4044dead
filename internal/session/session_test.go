package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/homekeep/internal/household"
	"github.com/cleared-dev/homekeep/internal/id"
)

var fixedNow = time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return New(opts)
}

func dispatch(t *testing.T, s *Session, req Request) Result {
	t.Helper()
	res, err := s.Dispatch(context.Background(), req)
	require.NoError(t, err)
	return res
}

func withHousehold(t *testing.T, opts Options) *Session {
	t.Helper()
	s := newTestSession(t, opts)
	res := dispatch(t, s, Request{Kind: CreateHousehold, Name: "Khan Family"})
	require.Equal(t, OutcomeSuccess, res.Outcome)
	return s
}

func TestCreateHousehold(t *testing.T) {
	s := newTestSession(t, Options{})
	assert.Nil(t, s.Household())

	res := dispatch(t, s, Request{Kind: CreateHousehold, Name: "  Khan Family "})
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, CreateHousehold, res.Kind)
	assert.Equal(t, "Household created: Khan Family", res.Message)
	require.NotNil(t, s.Household())
	assert.Equal(t, "Khan Family", s.Household().Name())
	assert.Equal(t, res.Message, s.Message())
}

func TestCreateHousehold_RequiresName(t *testing.T) {
	s := newTestSession(t, Options{})
	res := dispatch(t, s, Request{Kind: CreateHousehold, Name: "  "})
	assert.Equal(t, OutcomeWarning, res.Outcome)
	assert.Nil(t, s.Household())
}

func TestCreateHousehold_ReplacesCurrent(t *testing.T) {
	s := withHousehold(t, Options{})
	first := s.Household()
	dispatch(t, s, Request{Kind: AddGrocery, Item: "rice"})

	dispatch(t, s, Request{Kind: CreateHousehold, Name: "Second"})
	assert.NotSame(t, first, s.Household())
	assert.Empty(t, s.Household().Groceries())
}

func TestCreateHousehold_AppliesOptions(t *testing.T) {
	s := withHousehold(t, Options{Currency: "USD", NearBudgetRatio: decimal.RequireFromString("0.5")})
	assert.Equal(t, "USD", s.Household().Currency())

	dispatch(t, s, Request{Kind: SetBudget, Amount: "1000"})
	dispatch(t, s, Request{Kind: AddExpense, Name: "Sofa", Amount: "600"})

	res := dispatch(t, s, Request{Kind: Suggestions})
	assert.Equal(t, []string{household.SuggestionNearBudget}, res.Lines)
}

func TestRequiresHousehold(t *testing.T) {
	s := newTestSession(t, Options{})
	for _, k := range Kinds() {
		if !k.NeedsHousehold() {
			continue
		}
		res := dispatch(t, s, Request{Kind: k, Name: "x", Amount: "1", Item: "x"})
		assert.Equal(t, OutcomeWarning, res.Outcome, "kind %s", k)
		assert.Equal(t, MsgNoHousehold, res.Message, "kind %s", k)
	}
	assert.Nil(t, s.Household())
}

func TestSetBudget(t *testing.T) {
	s := withHousehold(t, Options{})

	res := dispatch(t, s, Request{Kind: SetBudget, Amount: "50000"})
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Budget set to PKR 50000.00", res.Message)

	tests := []struct {
		amount string
		want   string
	}{
		{"", "Please enter a budget amount!"},
		{"lots", `invalid amount "lots"`},
		{"-10", "Budget must not be negative!"},
	}
	for _, tt := range tests {
		res := dispatch(t, s, Request{Kind: SetBudget, Amount: tt.amount})
		assert.Equal(t, OutcomeWarning, res.Outcome, "amount %q", tt.amount)
		assert.Equal(t, tt.want, res.Message)
	}
	assert.True(t, s.Household().Budget().Equal(decimal.NewFromInt(50000)))
}

func TestAddExpense(t *testing.T) {
	s := withHousehold(t, Options{})

	res := dispatch(t, s, Request{Kind: AddExpense, Name: "Flour", Amount: "1200", Category: "grocery"})
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Added expense: Flour", res.Message)

	dispatch(t, s, Request{Kind: AddExpense, Name: "Tuition", Amount: "9000"})

	expenses := s.Household().Expenses()
	require.Len(t, expenses, 2)
	assert.Equal(t, "Grocery", string(expenses[0].Category()))
	assert.Equal(t, "Other", string(expenses[1].Category()), "blank category defaults to Other")
	assert.Equal(t, "2025-04-10", expenses[0].Created().Format("2006-01-02"))
}

func TestAddExpense_Validation(t *testing.T) {
	s := withHousehold(t, Options{})

	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"missing name", Request{Kind: AddExpense, Amount: "10"}, "Please enter the expense name and amount!"},
		{"missing amount", Request{Kind: AddExpense, Name: "Gas"}, "Please enter the expense name and amount!"},
		{"zero amount", Request{Kind: AddExpense, Name: "Gas", Amount: "0"}, "Please enter the expense name and amount!"},
		{"bad amount", Request{Kind: AddExpense, Name: "Gas", Amount: "ten"}, `invalid amount "ten"`},
		{"negative", Request{Kind: AddExpense, Name: "Gas", Amount: "-3"}, "Expense amount must not be negative!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := dispatch(t, s, tt.req)
			assert.Equal(t, OutcomeWarning, res.Outcome)
			assert.Equal(t, tt.want, res.Message)
		})
	}
	assert.Empty(t, s.Household().Expenses())
}

func TestPayExpense(t *testing.T) {
	s := withHousehold(t, Options{})

	res := dispatch(t, s, Request{Kind: PayExpense, Name: "Rent"})
	assert.Equal(t, "No unpaid expenses!", res.Message)

	dispatch(t, s, Request{Kind: AddExpense, Name: "Rent", Amount: "30000"})
	dispatch(t, s, Request{Kind: AddExpense, Name: "Water", Amount: "800"})
	assert.Equal(t, []string{"Rent", "Water"}, choiceNames(s, PayExpense))

	res = dispatch(t, s, Request{Kind: PayExpense, Name: "Gas"})
	assert.Equal(t, OutcomeWarning, res.Outcome)
	assert.Equal(t, "Gas is not an unpaid expense!", res.Message)

	res = dispatch(t, s, Request{Kind: PayExpense})
	assert.Equal(t, "Please select an expense!", res.Message)

	res = dispatch(t, s, Request{Kind: PayExpense, Name: "Rent"})
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Rent marked as paid!", res.Message)
	assert.Equal(t, []string{"Water"}, choiceNames(s, PayExpense))

	res = dispatch(t, s, Request{Kind: PayExpense, Name: "Rent"})
	assert.Equal(t, OutcomeWarning, res.Outcome, "paid expenses are no longer selectable")
}

func TestTasks(t *testing.T) {
	s := withHousehold(t, Options{})

	res := dispatch(t, s, Request{Kind: CompleteTask, Name: "Mop"})
	assert.Equal(t, "No pending tasks!", res.Message)

	res = dispatch(t, s, Request{Kind: AddTask, Name: "Mop", Priority: "low"})
	assert.Equal(t, "Added task: Mop", res.Message)
	dispatch(t, s, Request{Kind: AddTask, Name: "Iron"})

	tasks := s.Household().Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Low", string(tasks[0].Priority()))
	assert.Equal(t, "High", string(tasks[1].Priority()), "blank priority defaults to High")

	res = dispatch(t, s, Request{Kind: AddTask, Name: "Dust", Priority: "urgent"})
	assert.Equal(t, OutcomeWarning, res.Outcome)
	assert.Equal(t, `Unknown priority "urgent": choose High, Medium or Low`, res.Message)

	res = dispatch(t, s, Request{Kind: AddTask})
	assert.Equal(t, "Please enter a task name!", res.Message)

	res = dispatch(t, s, Request{Kind: CompleteTask, Name: "Mop"})
	assert.Equal(t, "Mop marked as completed!", res.Message)
	assert.Equal(t, []string{"Iron"}, choiceNames(s, CompleteTask))

	res = dispatch(t, s, Request{Kind: CompleteTask, Name: "Mop"})
	assert.Equal(t, "Mop is not a pending task!", res.Message)
}

func TestGroceries(t *testing.T) {
	s := withHousehold(t, Options{})

	res := dispatch(t, s, Request{Kind: AddGrocery, Item: ""})
	assert.Equal(t, "Please enter a grocery item!", res.Message)

	dispatch(t, s, Request{Kind: AddGrocery, Item: "eggs"})
	dispatch(t, s, Request{Kind: AddGrocery, Item: "eggs"})
	assert.Equal(t, []Choice{{Ref: "eggs", Label: "eggs"}, {Ref: "eggs", Label: "eggs"}}, s.Choices(RemoveGrocery))

	res = dispatch(t, s, Request{Kind: RemoveGrocery, Item: "eggs"})
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Removed from grocery list: eggs", res.Message)
	assert.Equal(t, []string{"eggs"}, s.Household().Groceries())

	res = dispatch(t, s, Request{Kind: RemoveGrocery, Item: "butter"})
	assert.Equal(t, OutcomeWarning, res.Outcome)
	assert.Equal(t, "butter not found in grocery list!", res.Message)
	assert.Equal(t, []string{"eggs"}, s.Household().Groceries())
}

func TestSuggestionsAndStatus(t *testing.T) {
	s := withHousehold(t, Options{})
	dispatch(t, s, Request{Kind: SetBudget, Amount: "1000"})
	dispatch(t, s, Request{Kind: AddExpense, Name: "TV", Amount: "900"})

	res := dispatch(t, s, Request{Kind: Suggestions})
	assert.Equal(t, OutcomeInfo, res.Outcome)
	assert.Equal(t, []string{household.SuggestionNearBudget}, res.Lines)
	assert.Equal(t, "Suggestions: "+household.SuggestionNearBudget, res.Message)

	dispatch(t, s, Request{Kind: SetPremium, Premium: true})
	res = dispatch(t, s, Request{Kind: Suggestions})
	require.Len(t, res.Lines, 3)
	assert.Equal(t, "Suggestions: "+household.SuggestionNearBudget+"; "+
		household.SuggestionPremiumStore+"; "+household.SuggestionPremiumExport, res.Message)

	res = dispatch(t, s, Request{Kind: Status})
	assert.Equal(t, OutcomeInfo, res.Outcome)
	assert.Equal(t, "Household: Khan Family | Budget: PKR 1000.00 | Total Expenses: PKR 900.00", res.Message)
	assert.Equal(t, s.Household().Status(), res.Lines)
}

func TestSetPremium(t *testing.T) {
	s := newTestSession(t, Options{Premium: true})
	assert.True(t, s.Premium())

	res := dispatch(t, s, Request{Kind: SetPremium, Premium: false})
	assert.Equal(t, "Premium tier disabled", res.Message)
	assert.False(t, s.Premium())

	res = dispatch(t, s, Request{Kind: SetPremium, Premium: true})
	assert.Equal(t, "Premium tier enabled", res.Message)
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := withHousehold(t, Options{ExportDir: dir})
	dispatch(t, s, Request{Kind: AddExpense, Name: "Gas", Amount: "1200", Category: "Utility"})

	res := dispatch(t, s, Request{Kind: Export})
	assert.Equal(t, OutcomeWarning, res.Outcome)
	assert.Equal(t, "Export is a premium feature!", res.Message)

	dispatch(t, s, Request{Kind: SetPremium, Premium: true})
	res = dispatch(t, s, Request{Kind: Export})
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Exported 2 files to "+dir, res.Message)
	require.Len(t, res.Lines, 2)
	for _, p := range res.Lines {
		_, err := os.Stat(p)
		require.NoError(t, err, "%s should exist", p)
	}
	assert.Equal(t, filepath.Join(dir, "expenses-2025-04.csv"), res.Lines[0])
}

func TestExport_NoDir(t *testing.T) {
	s := withHousehold(t, Options{Premium: true})
	res := dispatch(t, s, Request{Kind: Export})
	assert.Equal(t, "No export directory configured!", res.Message)
}

func TestExport_WriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := withHousehold(t, Options{Premium: true, ExportDir: filepath.Join(blocker, "sub")})
	_, err := s.Dispatch(context.Background(), Request{Kind: Export})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export")
}

func TestDispatch_UnknownKind(t *testing.T) {
	s := newTestSession(t, Options{})
	_, err := s.Dispatch(context.Background(), Request{Kind: Kind(99)})
	assert.Error(t, err)
}

func TestDispatch_CanceledContext(t *testing.T) {
	s := newTestSession(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Dispatch(ctx, Request{Kind: CreateHousehold, Name: "Home"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, s.Household())
}

func TestEntries(t *testing.T) {
	s := newTestSession(t, Options{})
	dispatch(t, s, Request{Kind: Status})
	dispatch(t, s, Request{Kind: CreateHousehold, Name: "Home"})
	dispatch(t, s, Request{Kind: RemoveGrocery, Item: "milk"})

	entries := s.Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, "status", entries[0].Command)
	assert.Equal(t, "warning", entries[0].Outcome)
	assert.Empty(t, entries[0].HouseholdID)

	assert.Equal(t, "create-household", entries[1].Command)
	assert.Equal(t, s.Household().ID(), entries[1].HouseholdID)
	assert.True(t, fixedNow.Equal(entries[1].Timestamp))

	assert.Equal(t, "remove-grocery", entries[2].Command)
	assert.Equal(t, "milk not found in grocery list!", entries[2].Message)
}

// choiceNames strips the short ID suffix from expense and task labels.
func choiceNames(s *Session, k Kind) []string {
	var out []string
	for _, c := range s.Choices(k) {
		name, _, _ := strings.Cut(c.Label, " [")
		out = append(out, name)
	}
	return out
}

func TestChoices_DuplicateNames(t *testing.T) {
	s := withHousehold(t, Options{})
	dispatch(t, s, Request{Kind: AddExpense, Name: "Bill", Amount: "10"})
	dispatch(t, s, Request{Kind: AddExpense, Name: "Bill", Amount: "20"})

	choices := s.Choices(PayExpense)
	require.Len(t, choices, 2)
	expenses := s.Household().Expenses()
	for i, c := range choices {
		assert.Equal(t, id.Short(expenses[i].ID()), c.Ref)
		assert.Equal(t, "Bill ["+c.Ref+"]", c.Label)
	}

	res := dispatch(t, s, Request{Kind: PayExpense, Name: choices[1].Ref})
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.False(t, expenses[0].IsPaid())
	assert.True(t, expenses[1].IsPaid(), "the second Bill is picked by its short ID")

	assert.Empty(t, s.Choices(Status))
}
