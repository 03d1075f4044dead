package model

import (
	"fmt"
	"strings"
)

// Priority ranks a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities returns all priorities, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

var _ Item = (*Task)(nil)

// Task is a household chore with a priority.
type Task struct {
	itemBase
	priority  Priority
	completed bool
}

// NewTask creates a pending task.
func NewTask(name string, priority Priority, opts ...Option) *Task {
	return &Task{
		itemBase: newItemBase(name, opts),
		priority: priority,
	}
}

// Priority returns the task priority.
func (t *Task) Priority() Priority { return t.priority }

// IsCompleted reports whether the task is done.
func (t *Task) IsCompleted() bool { return t.completed }

// MarkCompleted flags the task as done. There is no way back to pending.
func (t *Task) MarkCompleted() string {
	if t.completed {
		return fmt.Sprintf("%s is already completed", t.name)
	}
	t.completed = true
	return fmt.Sprintf("%s marked as completed!", t.name)
}

// Details returns a one-line summary.
func (t *Task) Details() string {
	status := "Pending"
	if t.completed {
		status = "Completed"
	}
	return fmt.Sprintf("Task: %s | Priority: %s | Status: %s | Date: %s",
		t.name, t.priority, status, t.created.Format(DateFormat))
}
