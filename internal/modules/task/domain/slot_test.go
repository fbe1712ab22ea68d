package domain_test

import (
	"testing"
	"time"

	"psched/internal/modules/task/domain"
)

func TestCombineDateTime(t *testing.T) {
	t.Parallel()
	ts, err := domain.CombineDateTime("2025-03-10", "09:00")
	if err != nil {
		t.Fatalf("combine should succeed: %v", err)
	}
	want := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	if !ts.Equal(want) {
		t.Fatalf("got %v, want %v", ts, want)
	}

	if _, err := domain.CombineDateTime("", "09:00"); err == nil {
		t.Fatalf("missing date should fail")
	}
	if _, err := domain.CombineDateTime("2025-03-10", ""); err == nil {
		t.Fatalf("missing time should fail")
	}
	if _, err := domain.CombineDateTime("10/03/2025", "09:00"); err == nil {
		t.Fatalf("wrong date format should fail")
	}
}

func TestSlotDuration(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	d, err := domain.SlotDuration(start, start.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("slot should be valid: %v", err)
	}
	if d != 15*time.Minute {
		t.Fatalf("got %v, want 15m", d)
	}

	// Sub-minute remainders round to whole minutes.
	d, err = domain.SlotDuration(start, start.Add(29*time.Minute+40*time.Second))
	if err != nil {
		t.Fatalf("slot should be valid: %v", err)
	}
	if d != 30*time.Minute {
		t.Fatalf("got %v, want 30m", d)
	}

	if _, err := domain.SlotDuration(start, start); err == nil {
		t.Fatalf("zero-length slot should fail")
	}
	if _, err := domain.SlotDuration(start, start.Add(-time.Hour)); err == nil {
		t.Fatalf("end before start should fail")
	}
}

func TestDraftResolveTimeSlot(t *testing.T) {
	t.Parallel()
	draft := domain.Draft{
		Title:     "Standup",
		Date:      "2025-03-10",
		StartTime: "09:00",
		EndTime:   "09:15",
	}
	task, err := draft.Resolve()
	if err != nil {
		t.Fatalf("draft should resolve: %v", err)
	}
	if task.Priority != domain.PriorityNormal {
		t.Fatalf("empty priority should default to Normal, got %q", task.Priority)
	}
	if task.Minutes() != 15 {
		t.Fatalf("got %d minutes, want 15", task.Minutes())
	}
	if task.IsDueDate {
		t.Fatalf("time-slot draft should not be a due date")
	}
}

func TestDraftResolveDueDate(t *testing.T) {
	t.Parallel()
	draft := domain.Draft{
		Title:     "File taxes",
		Priority:  domain.PriorityHigh,
		Date:      "2025-04-15",
		StartTime: "17:00",
		EndTime:   "08:00", // ignored for due dates
		IsDueDate: true,
	}
	task, err := draft.Resolve()
	if err != nil {
		t.Fatalf("draft should resolve: %v", err)
	}
	if task.Duration != domain.DueDateDuration {
		t.Fatalf("due date should take the nominal duration, got %v", task.Duration)
	}
	if !task.End().Equal(task.Deadline) {
		t.Fatalf("due date should end at its deadline")
	}
}

func TestDraftResolveRejectsInvertedSlot(t *testing.T) {
	t.Parallel()
	draft := domain.Draft{
		Title:     "Backwards",
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "09:00",
	}
	if _, err := draft.Resolve(); err == nil {
		t.Fatalf("end before start should fail")
	}
}
