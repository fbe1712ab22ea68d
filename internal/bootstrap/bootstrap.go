package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	authinadapter "psched/internal/modules/auth/adapter/in"
	authoutadapter "psched/internal/modules/auth/adapter/out"
	authservice "psched/internal/modules/auth/service"
	authusecase "psched/internal/modules/auth/usecase"
	chatinadapter "psched/internal/modules/chat/adapter/in"
	chatoutadapter "psched/internal/modules/chat/adapter/out"
	chatservice "psched/internal/modules/chat/service"
	chatusecase "psched/internal/modules/chat/usecase"
	taskinadapter "psched/internal/modules/task/adapter/in"
	taskoutadapter "psched/internal/modules/task/adapter/out"
	taskservice "psched/internal/modules/task/service"
	taskusecase "psched/internal/modules/task/usecase"
	"psched/internal/platform/clock"
	"psched/internal/platform/config"
	"psched/internal/platform/id"
	"psched/internal/platform/rest"
	uiapp "psched/internal/ui/app"
)

type App struct {
	AuthCLI authinadapter.CLIHandler
	TaskCLI taskinadapter.CLIHandler
	ChatCLI chatinadapter.CLIHandler

	transcripts *chatoutadapter.SQLiteTranscriptStore
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	client := rest.NewClient(cfg.BackendURL, cfg.RequestTimeout)

	transcripts, err := chatoutadapter.NewSQLiteTranscriptStore(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open transcript store: %w", err)
	}

	authSvc := authservice.NewAuthService(
		authoutadapter.NewHTTPDirectory(client),
		authoutadapter.NewFileSessionStore(cfg.SessionPath()),
		authoutadapter.NewTranscriptPurgeAdapter(transcripts),
	)
	authUC := authusecase.NewInteractor(authSvc)

	taskSvc := taskservice.NewCacheService(
		clk,
		taskoutadapter.NewHTTPTaskAPI(client),
		taskoutadapter.NewSessionIdentity(authUC),
	)
	taskUC := taskusecase.NewInteractor(taskSvc)

	chatSvc := chatservice.NewChatService(
		clk,
		ids,
		chatoutadapter.NewHTTPRelay(client),
		transcripts,
		chatoutadapter.NewSessionIdentity(authUC),
		chatoutadapter.NewCacheInvalidator(taskUC),
	)
	chatUC := chatusecase.NewInteractor(chatSvc)

	return &App{
		AuthCLI:     authinadapter.NewCLIHandler(authUC),
		TaskCLI:     taskinadapter.NewCLIHandler(taskUC),
		ChatCLI:     chatinadapter.NewCLIHandler(chatUC),
		transcripts: transcripts,
	}, nil
}

// Close releases the transcript database handle.
func (a *App) Close() error {
	return a.transcripts.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AuthCLI, app.TaskCLI, app.ChatCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
