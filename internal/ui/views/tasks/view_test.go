package tasks_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	taskdto "psched/internal/modules/task/dto"
	"psched/internal/ui/views/tasks"
)

type fakePort struct {
	tasks   []taskdto.TaskOutput
	deleted []int
}

func (p *fakePort) Refresh(context.Context) ([]taskdto.TaskOutput, error) {
	return p.tasks, nil
}

func (p *fakePort) Tasks(context.Context) []taskdto.TaskOutput { return p.tasks }

func (p *fakePort) Add(_ context.Context, input taskdto.DraftInput) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{Title: input.Title}, nil
}

func (p *fakePort) Edit(_ context.Context, id int, input taskdto.DraftInput) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{ID: id, Title: input.Title}, nil
}

func (p *fakePort) Delete(_ context.Context, id int) error {
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *fakePort) State(context.Context) taskdto.CacheState { return taskdto.CacheState{} }

func loadedModel(port *fakePort) tasks.Model {
	m := tasks.New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(tasks.LoadedMsg{Tasks: port.tasks})
	return m
}

func sampleTasks() []taskdto.TaskOutput {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	return []taskdto.TaskOutput{
		{ID: 1, Title: "write report", Priority: "High", Deadline: start, Minutes: 60, End: start.Add(time.Hour)},
		{ID: 2, Title: "buy groceries", Priority: "Low", Deadline: start.Add(3 * time.Hour), Minutes: 30, End: start.Add(3*time.Hour + 30*time.Minute)},
	}
}

func TestSelectedTaskFollowsCursor(t *testing.T) {
	t.Parallel()

	m := loadedModel(&fakePort{tasks: sampleTasks()})

	task, ok := m.SelectedTask()
	if !ok {
		t.Fatalf("expected a selection after load")
	}
	if task.ID != 1 {
		t.Fatalf("expected the first task selected, got id %d", task.ID)
	}
}

func TestSelectedTaskEmptyList(t *testing.T) {
	t.Parallel()

	m := loadedModel(&fakePort{})

	if _, ok := m.SelectedTask(); ok {
		t.Fatalf("expected no selection on an empty list")
	}
	if m.RequestDelete() {
		t.Fatalf("delete confirmation armed without a selection")
	}
	if _, ok := m.OpenEditForm(); ok {
		t.Fatalf("edit form opened without a selection")
	}
}

func TestRequestDeleteArmsConfirmation(t *testing.T) {
	t.Parallel()

	port := &fakePort{tasks: sampleTasks()}
	m := loadedModel(port)

	if !m.RequestDelete() {
		t.Fatalf("expected the confirmation to arm with a selection")
	}
	if !strings.Contains(m.View(), `delete "write report"?`) {
		t.Fatalf("confirmation prompt does not name the selected task")
	}
}
