// Package csvfile holds the header-checked CSV plumbing shared by the
// export report and the session transcript.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrHeaderMismatch is returned when a file does not start with the
// expected header row.
var ErrHeaderMismatch = errors.New("unexpected CSV header")

// Write writes the comma-separated header followed by rows.
func Write(w io.Writer, header string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns(header)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeRows(cw, rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Read returns the data rows of r. The first row must equal header and
// every row must have as many fields as the header.
func Read(r io.Reader, header string) ([][]string, error) {
	want := columns(header)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(want)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if !slices.Equal(records[0], want) {
		return nil, fmt.Errorf("%w: got %q", ErrHeaderMismatch, strings.Join(records[0], ","))
	}
	return records[1:], nil
}

// Append adds rows to the file at path. Parent directories and the file
// are created on first use, and the header is written only then. Appending
// no rows touches nothing.
func Append(path, header string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	_, statErr := os.Stat(path)
	fresh := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if fresh {
		return Write(f, header, rows)
	}
	cw := csv.NewWriter(f)
	if err := writeRows(cw, rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ReadFile is Read on the file at path. A missing file has no rows.
func ReadFile(path, header string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return Read(f, header)
}

func writeRows(cw *csv.Writer, rows [][]string) error {
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return nil
}

func columns(header string) []string {
	return strings.Split(header, ",")
}
