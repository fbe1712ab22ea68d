package out

import (
	"context"

	"psched/internal/modules/chat/domain"
)

// Relay is the backend's natural-language endpoint.
type Relay interface {
	Ask(ctx context.Context, userID int, message string) (string, error)
}

// TranscriptStore persists per-user chat history, ordered by insertion.
type TranscriptStore interface {
	Append(ctx context.Context, userKey string, message domain.Message) error
	List(ctx context.Context, userKey string) ([]domain.Message, error)
	Clear(ctx context.Context, userKey string) error
}

// Identity resolves whose transcript and user id a request runs under.
type Identity interface {
	Current(ctx context.Context) (userID int, userKey, displayName string, err error)
}

// TaskInvalidator tells the task cache that the assistant mutated tasks
// outside the cache's own mutation methods.
type TaskInvalidator interface {
	Invalidate(ctx context.Context, source string) error
}
