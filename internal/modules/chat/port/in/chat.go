package in

import (
	"context"

	"psched/internal/modules/chat/dto"
)

type Usecase interface {
	// Send relays the text to the assistant, persists both sides of the
	// exchange, and triggers a task cache invalidation when the reply
	// confirms a mutation.
	Send(ctx context.Context, text string) (dto.ExchangeOutput, error)
	// History replays the stored transcript, synthesizing a greeting when the
	// user has none yet.
	History(ctx context.Context) ([]dto.MessageOutput, error)
	Clear(ctx context.Context) error
}
