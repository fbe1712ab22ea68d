package dto

import "time"

// DraftInput mirrors what forms and flags collect: a date plus separate
// start/end times, not a precomputed duration.
type DraftInput struct {
	Title       string
	Description string
	Priority    string
	Date        string
	StartTime   string
	EndTime     string
	IsDueDate   bool
}

type TaskOutput struct {
	ID          int
	Title       string
	Description string
	Priority    string
	Deadline    time.Time
	Minutes     int
	IsDueDate   bool
	End         time.Time
}

// EventOutput is a task projected onto the calendar grid.
type EventOutput struct {
	Task   TaskOutput
	Start  time.Time
	End    time.Time
	Marker bool
}

// CacheState is the cache provider's display-only status surface.
type CacheState struct {
	Loading       bool
	Refreshing    bool
	LastError     string
	LastRefreshAt time.Time
}

// Invalidation is the typed replacement for the original's stringly-named
// broadcast event: something outside the cache's own mutation methods changed
// tasks server-side.
type Invalidation struct {
	Source string
	At     time.Time
}
