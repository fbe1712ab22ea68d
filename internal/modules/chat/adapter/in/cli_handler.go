package in

import (
	"context"

	"psched/internal/modules/chat/dto"
	chatin "psched/internal/modules/chat/port/in"
)

type CLIHandler struct {
	usecase chatin.Usecase
}

func NewCLIHandler(usecase chatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Send(ctx context.Context, text string) (dto.ExchangeOutput, error) {
	return h.usecase.Send(ctx, text)
}

func (h CLIHandler) History(ctx context.Context) ([]dto.MessageOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
