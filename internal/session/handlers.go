package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/homekeep/internal/household"
	"github.com/cleared-dev/homekeep/internal/logging"
	"github.com/cleared-dev/homekeep/internal/model"
	"github.com/cleared-dev/homekeep/internal/report"
)

func (s *Session) registerHandlers() {
	s.register(CreateHousehold, s.createHousehold)
	s.register(SetBudget, s.setBudget)
	s.register(AddExpense, s.addExpense)
	s.register(PayExpense, s.payExpense)
	s.register(AddTask, s.addTask)
	s.register(CompleteTask, s.completeTask)
	s.register(AddGrocery, s.addGrocery)
	s.register(RemoveGrocery, s.removeGrocery)
	s.register(Suggestions, s.suggestions)
	s.register(Status, s.status)
	s.register(SetPremium, s.setPremium)
	s.register(Export, s.export)
}

// parseAmount reads a user-typed amount. Blank input yields ok=false.
func parseAmount(raw string) (amount decimal.Decimal, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false, nil
	}
	amount, err = decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, true, nil
}

func (s *Session) createHousehold(_ context.Context, req Request) (Result, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return warning("Please enter a household name!"), nil
	}
	opts := []household.Option{household.WithCurrency(s.opts.Currency)}
	if !s.opts.NearBudgetRatio.IsZero() {
		opts = append(opts, household.WithNearBudgetRatio(s.opts.NearBudgetRatio))
	}
	s.household = household.New(name, opts...)
	s.logger.Info("household created", "name", name, logging.FieldHousehold, s.household.ID())
	return success("Household created: " + name), nil
}

func (s *Session) setBudget(_ context.Context, req Request) (Result, error) {
	amount, ok, err := parseAmount(req.Amount)
	if err != nil {
		return warning(err.Error()), nil
	}
	if !ok {
		return warning("Please enter a budget amount!"), nil
	}
	msg, err := s.household.SetBudget(amount)
	if errors.Is(err, model.ErrNegativeAmount) {
		return warning("Budget must not be negative!"), nil
	}
	if err != nil {
		return Result{}, err
	}
	return success(msg), nil
}

func (s *Session) addExpense(_ context.Context, req Request) (Result, error) {
	name := strings.TrimSpace(req.Name)
	amount, ok, err := parseAmount(req.Amount)
	if err != nil {
		return warning(err.Error()), nil
	}
	if name == "" || !ok || amount.IsZero() {
		return warning("Please enter the expense name and amount!"), nil
	}

	category := model.CategoryOther
	if strings.TrimSpace(req.Category) != "" {
		if category, err = model.ParseCategory(req.Category); err != nil {
			return warning(err.Error()), nil
		}
	}

	e, err := model.NewExpense(name, amount, category,
		model.CreatedOn(s.opts.Now()), model.WithCurrency(s.household.Currency()))
	if errors.Is(err, model.ErrNegativeAmount) {
		return warning("Expense amount must not be negative!"), nil
	}
	if err != nil {
		return Result{}, err
	}
	return success(s.household.AddExpense(e)), nil
}

func (s *Session) payExpense(_ context.Context, req Request) (Result, error) {
	if len(s.household.UnpaidExpenses()) == 0 {
		return warning("No unpaid expenses!"), nil
	}
	ref := strings.TrimSpace(req.Name)
	if ref == "" {
		return warning("Please select an expense!"), nil
	}
	e, ok := s.household.FindUnpaidExpense(ref)
	if !ok {
		return warningf("%s is not an unpaid expense!", ref), nil
	}
	return success(e.MarkPaid()), nil
}

func (s *Session) addTask(_ context.Context, req Request) (Result, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return warning("Please enter a task name!"), nil
	}

	priority := model.PriorityHigh
	if strings.TrimSpace(req.Priority) != "" {
		var err error
		if priority, err = model.ParsePriority(req.Priority); err != nil {
			return warningf("Unknown priority %q: choose High, Medium or Low", strings.TrimSpace(req.Priority)), nil
		}
	}

	t := model.NewTask(name, priority, model.CreatedOn(s.opts.Now()))
	return success(s.household.AddTask(t)), nil
}

func (s *Session) completeTask(_ context.Context, req Request) (Result, error) {
	if len(s.household.PendingTasks()) == 0 {
		return warning("No pending tasks!"), nil
	}
	ref := strings.TrimSpace(req.Name)
	if ref == "" {
		return warning("Please select a task!"), nil
	}
	t, ok := s.household.FindPendingTask(ref)
	if !ok {
		return warningf("%s is not a pending task!", ref), nil
	}
	return success(t.MarkCompleted()), nil
}

func (s *Session) addGrocery(_ context.Context, req Request) (Result, error) {
	item := strings.TrimSpace(req.Item)
	if item == "" {
		return warning("Please enter a grocery item!"), nil
	}
	return success(s.household.AddGroceryItem(item)), nil
}

func (s *Session) removeGrocery(_ context.Context, req Request) (Result, error) {
	item := strings.TrimSpace(req.Item)
	if item == "" {
		return warning("Please enter a grocery item!"), nil
	}
	msg, found := s.household.RemoveGroceryItem(item)
	if !found {
		return warning(msg), nil
	}
	return success(msg), nil
}

func (s *Session) suggestions(_ context.Context, _ Request) (Result, error) {
	lines := s.household.Suggestions(s.premium)
	return Result{
		Outcome: OutcomeInfo,
		Message: "Suggestions: " + strings.Join(lines, "; "),
		Lines:   lines,
	}, nil
}

func (s *Session) status(_ context.Context, _ Request) (Result, error) {
	lines := s.household.Status()
	return Result{
		Outcome: OutcomeInfo,
		Message: lines[0],
		Lines:   lines,
	}, nil
}

func (s *Session) setPremium(_ context.Context, req Request) (Result, error) {
	s.premium = req.Premium
	if s.premium {
		return success("Premium tier enabled"), nil
	}
	return success("Premium tier disabled"), nil
}

func (s *Session) export(_ context.Context, _ Request) (Result, error) {
	if !s.premium {
		return warning("Export is a premium feature!"), nil
	}
	if s.opts.ExportDir == "" {
		return warning("No export directory configured!"), nil
	}
	paths, err := report.Export(s.opts.ExportDir, s.household, s.opts.Now())
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("report exported", "dir", s.opts.ExportDir, "files", len(paths))
	return Result{
		Outcome: OutcomeSuccess,
		Message: fmt.Sprintf("Exported %d files to %s", len(paths), s.opts.ExportDir),
		Lines:   paths,
	}, nil
}
