package in

import (
	"context"
	"time"

	"psched/internal/modules/task/dto"
)

type Usecase interface {
	// Refresh fetches the full list for the current user, subject to the
	// cache's min-interval and in-flight guards. The result is ordered by
	// deadline, as is every list surface.
	Refresh(ctx context.Context) ([]dto.TaskOutput, error)
	// Tasks returns the cached snapshot, ordered by deadline, without
	// touching the network.
	Tasks(ctx context.Context) []dto.TaskOutput
	// EventsOn projects the cached snapshot onto the calendar day containing
	// day, ordered by start time.
	EventsOn(ctx context.Context, day time.Time) []dto.EventOutput
	// DayPriority is the most urgent priority among that day's events, or ""
	// when the day is empty.
	DayPriority(ctx context.Context, day time.Time) string
	Add(ctx context.Context, input dto.DraftInput) (dto.TaskOutput, error)
	Edit(ctx context.Context, id int, input dto.DraftInput) (dto.TaskOutput, error)
	Delete(ctx context.Context, id int) error
	State(ctx context.Context) dto.CacheState
	// Invalidations delivers external-mutation signals; every subscriber
	// observes each event at most once per delivery.
	Invalidations() <-chan dto.Invalidation
	// InvalidateExternal records a server-side mutation performed outside the
	// cache (the assistant) and forces a refresh.
	InvalidateExternal(ctx context.Context, source string) error
}
