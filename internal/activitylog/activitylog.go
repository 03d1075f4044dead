// Package activitylog records what happened during a session as CSV rows.
// It is a transcript only; household state is never rebuilt from it.
package activitylog

import (
	"fmt"
	"time"

	"github.com/cleared-dev/homekeep/internal/csvfile"
)

// Header is the CSV header for the session log.
const Header = "timestamp,command,household_id,outcome,message"

// Entry is one dispatched command and how it ended.
type Entry struct {
	Timestamp   time.Time
	Command     string
	HouseholdID string
	Outcome     string
	Message     string
}

// MarshalEntry converts an Entry to a CSV row in Header order.
func MarshalEntry(e Entry) []string {
	return []string{e.Timestamp.Format(time.RFC3339), e.Command, e.HouseholdID, e.Outcome, e.Message}
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != 5 {
		return Entry{}, fmt.Errorf("expected 5 fields, got %d", len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[0], err)
	}
	return Entry{
		Timestamp:   ts,
		Command:     record[1],
		HouseholdID: record[2],
		Outcome:     record[3],
		Message:     record[4],
	}, nil
}

// Append adds entries to the session log at path.
func Append(path string, entries []Entry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = MarshalEntry(e)
	}
	if err := csvfile.Append(path, Header, rows); err != nil {
		return fmt.Errorf("appending session log: %w", err)
	}
	return nil
}

// Read returns every entry in the session log at path, or nil when the
// log does not exist yet.
func Read(path string) ([]Entry, error) {
	rows, err := csvfile.ReadFile(path, Header)
	if err != nil {
		return nil, fmt.Errorf("reading session log: %w", err)
	}
	var entries []Entry
	for i, row := range rows {
		e, err := UnmarshalEntry(row)
		if err != nil {
			return nil, fmt.Errorf("session log row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
