// Package report writes CSV exports of a household's expenses and tasks.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cleared-dev/homekeep/internal/household"
)

// Export writes expenses-YYYY-MM.csv and tasks-YYYY-MM.csv for h into dir
// and returns the written paths. Existing files for the same month are
// overwritten.
func Export(dir string, h *household.Household, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	month := now.Format("2006-01")
	expensesPath := filepath.Join(dir, "expenses-"+month+".csv")
	tasksPath := filepath.Join(dir, "tasks-"+month+".csv")

	if err := writeFile(expensesPath, func(w io.Writer) error {
		return WriteExpenses(w, h.Expenses())
	}); err != nil {
		return nil, fmt.Errorf("exporting expenses: %w", err)
	}

	if err := writeFile(tasksPath, func(w io.Writer) error {
		return WriteTasks(w, h.Tasks())
	}); err != nil {
		return nil, fmt.Errorf("exporting tasks: %w", err)
	}

	return []string{expensesPath, tasksPath}, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
