package domain

import (
	"sort"
	"time"
)

// Event is a task projected onto the calendar. Due-date tasks become a
// fixed-length marker at their deadline; time-slot tasks span their full
// scheduled window.
type Event struct {
	Task   Task
	Start  time.Time
	End    time.Time
	Marker bool
}

func BuildEvents(tasks []Task) []Event {
	events := make([]Event, 0, len(tasks))
	for _, t := range tasks {
		ev := Event{Task: t, Start: t.Deadline}
		if t.IsDueDate {
			ev.End = t.Deadline.Add(DueDateDuration)
			ev.Marker = true
		} else {
			ev.End = t.Deadline.Add(t.Duration)
		}
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events
}

// EventsOn filters events overlapping the calendar day containing ts.
func EventsOn(events []Event, ts time.Time) []Event {
	dayStart := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	var out []Event
	for _, ev := range events {
		if ev.Start.Before(dayEnd) && ev.End.After(dayStart) {
			out = append(out, ev)
		}
	}
	return out
}

// SortByDeadline orders a task list chronologically, the order every view
// displays.
func SortByDeadline(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deadline.Before(out[j].Deadline)
	})
	return out
}

// HighestPriority reports the most urgent priority among events, used to
// color month-grid day cells.
func HighestPriority(events []Event) Priority {
	best := Priority("")
	for _, ev := range events {
		switch ev.Task.Priority {
		case PriorityHigh:
			return PriorityHigh
		case PriorityNormal:
			if best != PriorityNormal {
				best = PriorityNormal
			}
		case PriorityLow:
			if best == "" {
				best = PriorityLow
			}
		}
	}
	return best
}
