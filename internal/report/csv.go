package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/homekeep/internal/csvfile"
	"github.com/cleared-dev/homekeep/internal/model"
)

// ExpenseHeader is the CSV header for exported expenses.
const ExpenseHeader = "expense_id,name,amount,category,paid,created"

// TaskHeader is the CSV header for exported tasks.
const TaskHeader = "task_id,name,priority,completed,created"

const (
	expNumFields   = 6
	expColID       = 0
	expColName     = 1
	expColAmount   = 2
	expColCategory = 3
	expColPaid     = 4
	expColCreated  = 5

	taskNumFields   = 5
	taskColID       = 0
	taskColName     = 1
	taskColPriority = 2
	taskColDone     = 3
	taskColCreated  = 4
)

// ExpenseRow is a parsed row of an expense export.
type ExpenseRow struct {
	ID       string
	Name     string
	Amount   decimal.Decimal
	Category model.Category
	Paid     bool
	Created  time.Time
}

// TaskRow is a parsed row of a task export.
type TaskRow struct {
	ID        string
	Name      string
	Priority  model.Priority
	Completed bool
	Created   time.Time
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e *model.Expense) []string {
	row := make([]string, expNumFields)
	row[expColID] = e.ID()
	row[expColName] = e.Name()
	row[expColAmount] = e.Amount().StringFixed(2)
	row[expColCategory] = string(e.Category())
	row[expColPaid] = strconv.FormatBool(e.IsPaid())
	row[expColCreated] = e.Created().Format(model.DateFormat)
	return row
}

// UnmarshalExpense converts a CSV row to an ExpenseRow.
func UnmarshalExpense(record []string) (ExpenseRow, error) {
	if len(record) != expNumFields {
		return ExpenseRow{}, fmt.Errorf("expected %d fields, got %d", expNumFields, len(record))
	}

	amount, err := decimal.NewFromString(record[expColAmount])
	if err != nil {
		return ExpenseRow{}, fmt.Errorf("parsing amount %q: %w", record[expColAmount], err)
	}

	paid, err := strconv.ParseBool(record[expColPaid])
	if err != nil {
		return ExpenseRow{}, fmt.Errorf("parsing paid %q: %w", record[expColPaid], err)
	}

	created, err := time.Parse(model.DateFormat, record[expColCreated])
	if err != nil {
		return ExpenseRow{}, fmt.Errorf("parsing created %q: %w", record[expColCreated], err)
	}

	return ExpenseRow{
		ID:       record[expColID],
		Name:     record[expColName],
		Amount:   amount,
		Category: model.Category(record[expColCategory]),
		Paid:     paid,
		Created:  created,
	}, nil
}

// MarshalTask converts a Task to a CSV row.
func MarshalTask(t *model.Task) []string {
	row := make([]string, taskNumFields)
	row[taskColID] = t.ID()
	row[taskColName] = t.Name()
	row[taskColPriority] = string(t.Priority())
	row[taskColDone] = strconv.FormatBool(t.IsCompleted())
	row[taskColCreated] = t.Created().Format(model.DateFormat)
	return row
}

// UnmarshalTask converts a CSV row to a TaskRow.
func UnmarshalTask(record []string) (TaskRow, error) {
	if len(record) != taskNumFields {
		return TaskRow{}, fmt.Errorf("expected %d fields, got %d", taskNumFields, len(record))
	}

	priority, err := model.ParsePriority(record[taskColPriority])
	if err != nil {
		return TaskRow{}, fmt.Errorf("parsing priority: %w", err)
	}

	done, err := strconv.ParseBool(record[taskColDone])
	if err != nil {
		return TaskRow{}, fmt.Errorf("parsing completed %q: %w", record[taskColDone], err)
	}

	created, err := time.Parse(model.DateFormat, record[taskColCreated])
	if err != nil {
		return TaskRow{}, fmt.Errorf("parsing created %q: %w", record[taskColCreated], err)
	}

	return TaskRow{
		ID:        record[taskColID],
		Name:      record[taskColName],
		Priority:  priority,
		Completed: done,
		Created:   created,
	}, nil
}

// WriteExpenses writes an expense export including the header.
func WriteExpenses(w io.Writer, expenses []*model.Expense) error {
	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		rows[i] = MarshalExpense(e)
	}
	return csvfile.Write(w, ExpenseHeader, rows)
}

// WriteTasks writes a task export including the header.
func WriteTasks(w io.Writer, tasks []*model.Task) error {
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = MarshalTask(t)
	}
	return csvfile.Write(w, TaskHeader, rows)
}

// ReadExpenses reads an expense export.
func ReadExpenses(r io.Reader) ([]ExpenseRow, error) {
	records, err := csvfile.Read(r, ExpenseHeader)
	if err != nil {
		return nil, err
	}
	var out []ExpenseRow
	for i, rec := range records {
		row, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, row)
	}
	return out, nil
}

// ReadTasks reads a task export.
func ReadTasks(r io.Reader) ([]TaskRow, error) {
	records, err := csvfile.Read(r, TaskHeader)
	if err != nil {
		return nil, err
	}
	var out []TaskRow
	for i, rec := range records {
		row, err := UnmarshalTask(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, row)
	}
	return out, nil
}
