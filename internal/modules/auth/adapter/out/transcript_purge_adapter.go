package out

import (
	"context"

	authout "psched/internal/modules/auth/port/out"
	chatout "psched/internal/modules/chat/port/out"
)

// TranscriptPurgeAdapter bridges logout to the chat transcript store so one
// user's history never survives into another account's session.
type TranscriptPurgeAdapter struct {
	store chatout.TranscriptStore
}

func NewTranscriptPurgeAdapter(store chatout.TranscriptStore) authout.TranscriptPurger {
	return &TranscriptPurgeAdapter{store: store}
}

func (a *TranscriptPurgeAdapter) Purge(ctx context.Context, userKey string) error {
	return a.store.Clear(ctx, userKey)
}
