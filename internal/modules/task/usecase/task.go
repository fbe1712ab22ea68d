package usecase

import (
	"context"
	"time"

	"psched/internal/modules/task/domain"
	"psched/internal/modules/task/dto"
	taskin "psched/internal/modules/task/port/in"
	"psched/internal/modules/task/service"
)

type Interactor struct {
	svc *service.CacheService
}

func NewInteractor(svc *service.CacheService) taskin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Refresh(ctx context.Context) ([]dto.TaskOutput, error) {
	tasks, err := i.svc.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(domain.SortByDeadline(tasks)), nil
}

func (i *Interactor) Tasks(context.Context) []dto.TaskOutput {
	return toOutputs(domain.SortByDeadline(i.svc.Tasks()))
}

func (i *Interactor) EventsOn(_ context.Context, day time.Time) []dto.EventOutput {
	events := domain.EventsOn(domain.BuildEvents(i.svc.Tasks()), day)
	out := make([]dto.EventOutput, 0, len(events))
	for _, ev := range events {
		out = append(out, dto.EventOutput{
			Task:   toOutput(ev.Task),
			Start:  ev.Start,
			End:    ev.End,
			Marker: ev.Marker,
		})
	}
	return out
}

func (i *Interactor) DayPriority(_ context.Context, day time.Time) string {
	events := domain.EventsOn(domain.BuildEvents(i.svc.Tasks()), day)
	return string(domain.HighestPriority(events))
}

func (i *Interactor) Add(ctx context.Context, input dto.DraftInput) (dto.TaskOutput, error) {
	task, err := toDraft(input).Resolve()
	if err != nil {
		return dto.TaskOutput{}, err
	}
	created, err := i.svc.Add(ctx, task)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(created), nil
}

func (i *Interactor) Edit(ctx context.Context, id int, input dto.DraftInput) (dto.TaskOutput, error) {
	task, err := toDraft(input).Resolve()
	if err != nil {
		return dto.TaskOutput{}, err
	}
	updated, err := i.svc.Edit(ctx, id, task)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(updated), nil
}

func (i *Interactor) Delete(ctx context.Context, id int) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) State(context.Context) dto.CacheState {
	loading, refreshing, lastError, lastRefresh := i.svc.State()
	return dto.CacheState{
		Loading:       loading,
		Refreshing:    refreshing,
		LastError:     lastError,
		LastRefreshAt: lastRefresh,
	}
}

func (i *Interactor) Invalidations() <-chan dto.Invalidation {
	src := i.svc.Subscribe()
	out := make(chan dto.Invalidation, 4)
	go func() {
		for event := range src {
			out <- dto.Invalidation{Source: event.Source, At: event.At}
		}
	}()
	return out
}

func (i *Interactor) InvalidateExternal(ctx context.Context, source string) error {
	return i.svc.InvalidateExternal(ctx, source)
}

func toDraft(input dto.DraftInput) domain.Draft {
	return domain.Draft{
		Title:       input.Title,
		Description: input.Description,
		Priority:    domain.Priority(input.Priority),
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsDueDate:   input.IsDueDate,
	}
}

func toOutput(task domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Deadline:    task.Deadline,
		Minutes:     task.Minutes(),
		IsDueDate:   task.IsDueDate,
		End:         task.End(),
	}
}

func toOutputs(tasks []domain.Task) []dto.TaskOutput {
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toOutput(task))
	}
	return out
}
