package app_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "psched/internal/modules/auth/dto"
	chatdto "psched/internal/modules/chat/dto"
	taskdto "psched/internal/modules/task/dto"
	apperrors "psched/internal/platform/errors"
	"psched/internal/ui/app"
	loginview "psched/internal/ui/views/login"
)

type stubAuth struct{}

func (stubAuth) Register(context.Context, authdto.RegisterInput) (authdto.SessionOutput, error) {
	return authdto.SessionOutput{}, nil
}

func (stubAuth) Login(context.Context, authdto.LoginInput) (authdto.SessionOutput, error) {
	return authdto.SessionOutput{}, nil
}

func (stubAuth) Logout(context.Context) error { return nil }

func (stubAuth) Current(context.Context) (authdto.SessionOutput, error) {
	return authdto.SessionOutput{}, apperrors.ErrNotLoggedIn
}

type stubTask struct{}

func (stubTask) Refresh(context.Context) ([]taskdto.TaskOutput, error) { return nil, nil }
func (stubTask) Tasks(context.Context) []taskdto.TaskOutput            { return nil }

func (stubTask) EventsOn(context.Context, time.Time) []taskdto.EventOutput { return nil }
func (stubTask) DayPriority(context.Context, time.Time) string             { return "" }

func (stubTask) Add(context.Context, taskdto.DraftInput) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{}, nil
}

func (stubTask) Edit(context.Context, int, taskdto.DraftInput) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{}, nil
}

func (stubTask) Delete(context.Context, int) error            { return nil }
func (stubTask) State(context.Context) taskdto.CacheState     { return taskdto.CacheState{} }
func (stubTask) Invalidations() <-chan taskdto.Invalidation   { return make(chan taskdto.Invalidation) }

type stubChat struct{}

func (stubChat) Send(context.Context, string) (chatdto.ExchangeOutput, error) {
	return chatdto.ExchangeOutput{}, nil
}

func (stubChat) History(context.Context) ([]chatdto.MessageOutput, error) { return nil, nil }
func (stubChat) Clear(context.Context) error                              { return nil }

func TestViewFitsTerminalHeight(t *testing.T) {
	t.Parallel()

	const width, height = 80, 24

	root := app.NewModel(stubAuth{}, stubTask{}, stubChat{})
	model, _ := root.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, _ = model.Update(loginview.AuthenticatedMsg{
		Session: authdto.SessionOutput{UserID: 7, Username: "ada", DisplayName: "Ada"},
	})

	if got := lipgloss.Height(model.View()); got > height {
		t.Fatalf("joined output is %d lines for a %d-line terminal", got, height)
	}
}
