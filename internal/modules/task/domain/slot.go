package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// CombineDateTime parses a "2006-01-02" date and a "15:04" time-of-day into
// one absolute timestamp. Forms collect the two fields separately, exactly
// like the backend expects them combined.
func CombineDateTime(date, timeOfDay string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeOfDay = strings.TrimSpace(timeOfDay)
	if date == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if timeOfDay == "" {
		return time.Time{}, fmt.Errorf("time is required")
	}
	ts, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+timeOfDay, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time format: %w", err)
	}
	return ts, nil
}

// SlotDuration computes the whole-minute duration of [start, end), rounded.
// An end at or before the start is rejected before anything hits the network.
func SlotDuration(start, end time.Time) (time.Duration, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("end time must be after start time")
	}
	minutes := math.Round(end.Sub(start).Minutes())
	return time.Duration(minutes) * time.Minute, nil
}

// Draft is a task as collected from a form or flags, before submission.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	Date        string
	StartTime   string
	EndTime     string
	IsDueDate   bool
}

// Resolve turns a draft into a submittable task. Due-date drafts ignore the
// end time and take the nominal duration; time-slot drafts derive their
// duration from the start/end pair.
func (d Draft) Resolve() (Task, error) {
	start, err := CombineDateTime(d.Date, d.StartTime)
	if err != nil {
		return Task{}, err
	}
	priority := d.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	task := Task{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Priority:    priority,
		Deadline:    start,
		IsDueDate:   d.IsDueDate,
	}
	if d.IsDueDate {
		task.Duration = DueDateDuration
	} else {
		end, err := CombineDateTime(d.Date, d.EndTime)
		if err != nil {
			return Task{}, fmt.Errorf("invalid end time: %w", err)
		}
		task.Duration, err = SlotDuration(start, end)
		if err != nil {
			return Task{}, err
		}
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	return task, nil
}
