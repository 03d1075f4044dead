// Package shell is the terminal front end of a session: a menu-and-form
// loop for interactive use and a replay mode for YAML scripts.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cleared-dev/homekeep/internal/logging"
	"github.com/cleared-dev/homekeep/internal/model"
	"github.com/cleared-dev/homekeep/internal/session"
)

// Shell reads user input, turns it into session requests and renders
// the results.
type Shell struct {
	session *session.Session
	in      *bufio.Reader
	out     io.Writer
	logger  *slog.Logger
}

// New creates a Shell reading from in and writing to out.
func New(s *session.Session, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	return &Shell{
		session: s,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logging.Component(logger, "shell"),
	}
}

// Run shows the menu until the user quits, input ends or ctx is canceled.
func (sh *Shell) Run(ctx context.Context) error {
	sh.println(FormatTitle("Manage Your Household"))
	sh.println(SubtleStyle.Render("Track expenses, manage tasks, and plan groceries with smart suggestions!"))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sh.printMenu()
		choice, err := sh.readLine(FormatPrompt("Choose"))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		}

		kind, err := parseChoice(choice)
		if err != nil {
			sh.println(FormatError(err.Error()))
			continue
		}

		req, err := sh.fillForm(kind)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := sh.dispatch(ctx, req); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			sh.logger.Warn("command failed", logging.FieldCommand, kind.String(), logging.FieldError, err)
		}
	}
}

func (sh *Shell) dispatch(ctx context.Context, req session.Request) error {
	res, err := sh.session.Dispatch(ctx, req)
	if err != nil {
		sh.println(FormatError(err.Error()))
		return err
	}
	sh.println(Render(res))
	return nil
}

func (sh *Shell) printMenu() {
	var b strings.Builder
	for i, k := range session.Kinds() {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, k.Title())
	}
	b.WriteString(" q. Quit")
	sh.println(RenderBox("Menu", b.String()))
}

// parseChoice accepts a menu number or a command name.
func parseChoice(choice string) (session.Kind, error) {
	kinds := session.Kinds()
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(kinds) {
			return 0, fmt.Errorf("no menu entry %d", n)
		}
		return kinds[n-1], nil
	}
	return session.ParseKind(choice)
}

// fillForm prompts for the fields of kind. Commands that cannot run yet
// skip their form and go straight to dispatch, which explains why.
func (sh *Shell) fillForm(kind session.Kind) (session.Request, error) {
	req := session.Request{Kind: kind}
	if kind.NeedsHousehold() && sh.session.Household() == nil {
		return req, nil
	}

	sh.println(TitleStyle.Render(kind.Title()))

	var err error
	switch kind {
	case session.CreateHousehold:
		req.Name, err = sh.readLine(FormatPrompt("Household name"))
	case session.SetBudget:
		req.Amount, err = sh.readLine(FormatPrompt("Budget (" + sh.session.Household().Currency() + ")"))
	case session.AddExpense:
		if req.Name, err = sh.readLine(FormatPrompt("Expense name")); err != nil {
			return req, err
		}
		if req.Amount, err = sh.readLine(FormatPrompt("Amount (" + sh.session.Household().Currency() + ")")); err != nil {
			return req, err
		}
		req.Category, err = sh.readLine(FormatPrompt("Category [" + joinCategories() + "]"))
	case session.PayExpense, session.CompleteTask:
		req.Name, err = sh.selectChoice(kind)
	case session.AddTask:
		if req.Name, err = sh.readLine(FormatPrompt("Task name")); err != nil {
			return req, err
		}
		req.Priority, err = sh.readLine(FormatPrompt("Priority [" + joinPriorities() + "]"))
	case session.AddGrocery:
		req.Item, err = sh.readLine(FormatPrompt("Grocery item"))
	case session.RemoveGrocery:
		req.Item, err = sh.selectChoice(kind)
	case session.SetPremium:
		var answer string
		answer, err = sh.readLine(FormatPrompt("Enable premium tier? [y/n]"))
		req.Premium = isYes(answer)
	}
	return req, err
}

// selectChoice lists the selectable entries and reads a number or free
// text. A number resolves to the entry's Ref; anything else is passed
// through so names still work.
func (sh *Shell) selectChoice(kind session.Kind) (string, error) {
	choices := sh.session.Choices(kind)
	if len(choices) == 0 {
		if kind == session.RemoveGrocery {
			return sh.readLine(FormatPrompt("Grocery item"))
		}
		return "", nil
	}
	for i, c := range choices {
		sh.println(fmt.Sprintf("  %d. %s", i+1, c.Label))
	}
	answer, err := sh.readLine(FormatPrompt("Select"))
	if err != nil {
		return "", err
	}
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(choices) {
		return choices[n-1].Ref, nil
	}
	return answer, nil
}

// readLine prints prompt and returns the next trimmed line. A final line
// without a newline is returned before io.EOF.
func (sh *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(sh.out, prompt)
	line, err := sh.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (sh *Shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}

// Render formats a result for the terminal.
func Render(res session.Result) string {
	switch res.Outcome {
	case session.OutcomeWarning:
		return FormatWarning(res.Message)
	case session.OutcomeInfo:
		if len(res.Lines) == 0 {
			return FormatInfo(res.Message)
		}
		if res.Kind == session.Status {
			return RenderBox(res.Kind.Title(), strings.Join(res.Lines, "\n"))
		}
		return RenderBox(res.Kind.Title(), FormatList(res.Lines))
	default:
		if len(res.Lines) == 0 {
			return FormatSuccess(res.Message)
		}
		return FormatSuccess(res.Message) + "\n" + SubtleStyle.Render(FormatList(res.Lines))
	}
}

func joinCategories() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, "/")
}

func joinPriorities() string {
	names := make([]string, 0, len(model.Priorities()))
	for _, p := range model.Priorities() {
		names = append(names, string(p))
	}
	return strings.Join(names, "/")
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "on":
		return true
	}
	return false
}
