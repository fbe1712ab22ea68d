package usecase

import (
	"context"

	"psched/internal/modules/chat/domain"
	"psched/internal/modules/chat/dto"
	chatin "psched/internal/modules/chat/port/in"
	"psched/internal/modules/chat/service"
)

type Interactor struct {
	svc *service.ChatService
}

func NewInteractor(svc *service.ChatService) chatin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Send(ctx context.Context, text string) (dto.ExchangeOutput, error) {
	userMsg, assistantMsg, mutated, err := i.svc.Send(ctx, text)
	if err != nil {
		return dto.ExchangeOutput{}, err
	}
	return dto.ExchangeOutput{
		User:         toOutput(userMsg),
		Assistant:    toOutput(assistantMsg),
		MutatedTasks: mutated,
	}, nil
}

func (i *Interactor) History(ctx context.Context) ([]dto.MessageOutput, error) {
	messages, err := i.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageOutput, 0, len(messages))
	for _, m := range messages {
		out = append(out, toOutput(m))
	}
	return out, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func toOutput(m domain.Message) dto.MessageOutput {
	return dto.MessageOutput{
		ID:        m.ID,
		Text:      m.Text,
		Sender:    string(m.Sender),
		CreatedAt: m.CreatedAt,
	}
}
