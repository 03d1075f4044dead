// Package session holds the state of one interactive session: the current
// household (if any), the premium flag and the last message. Every user
// action is a Request dispatched to exactly one handler.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/homekeep/internal/activitylog"
	"github.com/cleared-dev/homekeep/internal/household"
	"github.com/cleared-dev/homekeep/internal/id"
	"github.com/cleared-dev/homekeep/internal/logging"
	"github.com/cleared-dev/homekeep/internal/model"
)

// MsgNoHousehold is shown for commands issued before a household exists.
const MsgNoHousehold = "Create a household first!"

// Options configures a Session.
type Options struct {
	Currency        string
	NearBudgetRatio decimal.Decimal
	Premium         bool
	ExportDir       string
	Logger          *slog.Logger
	Now             func() time.Time
}

type handlerFunc func(ctx context.Context, req Request) (Result, error)

// Session is the per-user context passed to every handler. It is not safe
// for concurrent use.
type Session struct {
	opts      Options
	household *household.Household
	premium   bool
	message   string
	entries   []activitylog.Entry
	handlers  map[Kind]handlerFunc
	logger    *slog.Logger
}

// New creates a session with no household.
func New(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Currency == "" {
		opts.Currency = model.DefaultCurrency
	}
	s := &Session{
		opts:     opts,
		premium:  opts.Premium,
		handlers: make(map[Kind]handlerFunc),
		logger:   logging.Component(opts.Logger, "session"),
	}
	s.registerHandlers()
	return s
}

// Household returns the current household, or nil.
func (s *Session) Household() *household.Household { return s.household }

// Premium reports whether the premium tier is enabled.
func (s *Session) Premium() bool { return s.premium }

// Message returns the message of the last dispatched command.
func (s *Session) Message() string { return s.message }

// Entries returns the activity recorded so far.
func (s *Session) Entries() []activitylog.Entry {
	return append([]activitylog.Entry(nil), s.entries...)
}

// register adds a handler. Panics on duplicate kind.
func (s *Session) register(k Kind, h handlerFunc) {
	if _, ok := s.handlers[k]; ok {
		panic("duplicate handler for " + k.String())
	}
	s.handlers[k] = h
}

// Dispatch runs the handler for req.Kind. Invalid input and missing
// selections come back as Warning results; an error means the command
// could not run at all.
func (s *Session) Dispatch(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	h, ok := s.handlers[req.Kind]
	if !ok {
		return Result{}, fmt.Errorf("no handler for command %s", req.Kind)
	}

	var res Result
	if req.Kind.NeedsHousehold() && s.household == nil {
		res = warning(MsgNoHousehold)
	} else {
		var err error
		res, err = h(ctx, req)
		if err != nil {
			s.logger.Error("command failed", logging.FieldCommand, req.Kind.String(), logging.FieldError, err)
			return Result{}, fmt.Errorf("%s: %w", req.Kind, err)
		}
	}
	res.Kind = req.Kind

	s.message = res.Message
	s.record(res)
	return res, nil
}

func (s *Session) record(res Result) {
	householdID := ""
	if s.household != nil {
		householdID = s.household.ID()
	}
	s.entries = append(s.entries, activitylog.Entry{
		Timestamp:   s.opts.Now(),
		Command:     res.Kind.String(),
		HouseholdID: householdID,
		Outcome:     string(res.Outcome),
		Message:     res.Message,
	})
	s.logger.Debug("command dispatched",
		logging.FieldCommand, res.Kind.String(),
		logging.FieldOutcome, string(res.Outcome),
		logging.FieldHousehold, householdID)
}

// Choice is one selectable entry. Ref is what goes back into the request;
// Label is what the user sees.
type Choice struct {
	Ref   string
	Label string
}

// Choices lists what a selection field may hold for a command: unpaid
// expenses for PayExpense, pending tasks for CompleteTask and grocery items
// for RemoveGrocery. Expenses and tasks are referenced by short ID so that
// entries sharing a name stay distinguishable. Other commands have no
// choices.
func (s *Session) Choices(k Kind) []Choice {
	if s.household == nil {
		return nil
	}
	var out []Choice
	switch k {
	case PayExpense:
		for _, e := range s.household.UnpaidExpenses() {
			out = append(out, itemChoice(e))
		}
	case CompleteTask:
		for _, t := range s.household.PendingTasks() {
			out = append(out, itemChoice(t))
		}
	case RemoveGrocery:
		for _, g := range s.household.Groceries() {
			out = append(out, Choice{Ref: g, Label: g})
		}
	}
	return out
}

func itemChoice(it model.Item) Choice {
	short := id.Short(it.ID())
	return Choice{Ref: short, Label: fmt.Sprintf("%s [%s]", it.Name(), short)}
}
