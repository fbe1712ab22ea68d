package out

import (
	"context"
	"fmt"
	"time"

	"psched/internal/modules/task/domain"
	taskout "psched/internal/modules/task/port/out"
	"psched/internal/platform/rest"
)

// wireTask is the backend's task shape. Deadline travels as ISO-8601 text;
// the backend omits the zone on the way out, so parsing tolerates both.
type wireTask struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
	Duration    int    `json:"duration"`
	IsDueDate   bool   `json:"is_due_date"`
	UserID      int    `json:"user_id,omitempty"`
}

type HTTPTaskAPI struct {
	client *rest.Client
}

func NewHTTPTaskAPI(client *rest.Client) taskout.API {
	return &HTTPTaskAPI{client: client}
}

func (a *HTTPTaskAPI) List(ctx context.Context, userID int) ([]domain.Task, error) {
	var wire []wireTask
	if err := a.client.Get(ctx, fmt.Sprintf("/tasks?user_id=%d", userID), &wire); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(wire))
	for _, w := range wire {
		task, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (a *HTTPTaskAPI) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	var wire wireTask
	if err := a.client.Post(ctx, "/tasks", toWire(task), &wire); err != nil {
		return domain.Task{}, err
	}
	return fromWire(wire)
}

func (a *HTTPTaskAPI) Update(ctx context.Context, id int, task domain.Task) (domain.Task, error) {
	var wire wireTask
	if err := a.client.Put(ctx, fmt.Sprintf("/tasks/%d", id), toWire(task), &wire); err != nil {
		return domain.Task{}, err
	}
	return fromWire(wire)
}

func (a *HTTPTaskAPI) Delete(ctx context.Context, id int) error {
	return a.client.Delete(ctx, fmt.Sprintf("/tasks/%d", id))
}

func toWire(task domain.Task) wireTask {
	return wireTask{
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Deadline:    task.Deadline.Format(time.RFC3339),
		Duration:    task.Minutes(),
		IsDueDate:   task.IsDueDate,
		UserID:      task.UserID,
	}
}

func fromWire(w wireTask) (domain.Task, error) {
	deadline, err := parseDeadline(w.Deadline)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %d: %w", w.ID, err)
	}
	return domain.Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Priority:    domain.Priority(w.Priority),
		Deadline:    deadline,
		Duration:    time.Duration(w.Duration) * time.Minute,
		IsDueDate:   w.IsDueDate,
		UserID:      w.UserID,
	}, nil
}

func parseDeadline(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable deadline %q", raw)
}
