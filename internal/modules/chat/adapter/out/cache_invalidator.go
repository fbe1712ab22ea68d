package out

import (
	"context"

	chatout "psched/internal/modules/chat/port/out"
	taskin "psched/internal/modules/task/port/in"
)

// CacheInvalidator routes assistant-side mutations into the task cache's
// typed invalidation channel, replacing the original's ad hoc broadcast
// event.
type CacheInvalidator struct {
	tasks taskin.Usecase
}

func NewCacheInvalidator(tasks taskin.Usecase) chatout.TaskInvalidator {
	return &CacheInvalidator{tasks: tasks}
}

func (a *CacheInvalidator) Invalidate(ctx context.Context, source string) error {
	return a.tasks.InvalidateExternal(ctx, source)
}
