package in

import (
	"context"
	"time"

	"psched/internal/modules/task/dto"
	taskin "psched/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Refresh(ctx context.Context) ([]dto.TaskOutput, error) {
	return h.usecase.Refresh(ctx)
}

func (h CLIHandler) Tasks(ctx context.Context) []dto.TaskOutput {
	return h.usecase.Tasks(ctx)
}

func (h CLIHandler) EventsOn(ctx context.Context, day time.Time) []dto.EventOutput {
	return h.usecase.EventsOn(ctx, day)
}

func (h CLIHandler) DayPriority(ctx context.Context, day time.Time) string {
	return h.usecase.DayPriority(ctx, day)
}

func (h CLIHandler) Add(ctx context.Context, input dto.DraftInput) (dto.TaskOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Edit(ctx context.Context, id int, input dto.DraftInput) (dto.TaskOutput, error) {
	return h.usecase.Edit(ctx, id, input)
}

func (h CLIHandler) Delete(ctx context.Context, id int) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) State(ctx context.Context) dto.CacheState {
	return h.usecase.State(ctx)
}

func (h CLIHandler) Invalidations() <-chan dto.Invalidation {
	return h.usecase.Invalidations()
}

func (h CLIHandler) InvalidateExternal(ctx context.Context, source string) error {
	return h.usecase.InvalidateExternal(ctx, source)
}
