package domain

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
)

// DueDateDuration is the nominal length stamped on due-date tasks. It exists
// only so calendar views have something to draw; it carries no scheduling
// meaning.
const DueDateDuration = 15 * time.Minute

type Task struct {
	ID          int
	Title       string
	Description string
	Priority    Priority
	Deadline    time.Time
	Duration    time.Duration
	IsDueDate   bool
	UserID      int
}

func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return nil
	default:
		return fmt.Errorf("unsupported priority %q", string(p))
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if err := t.Priority.Validate(); err != nil {
		return err
	}
	if t.Deadline.IsZero() {
		return fmt.Errorf("deadline is required")
	}
	if !t.IsDueDate && t.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}

// End is the displayed end of a time-slot task. A due-date task ends at its
// deadline regardless of the nominal duration.
func (t Task) End() time.Time {
	if t.IsDueDate {
		return t.Deadline
	}
	return t.Deadline.Add(t.Duration)
}

// Minutes is the wire representation of the duration.
func (t Task) Minutes() int {
	return int(t.Duration / time.Minute)
}
