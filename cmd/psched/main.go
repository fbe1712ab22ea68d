package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"psched/internal/bootstrap"
	authdto "psched/internal/modules/auth/dto"
	taskdto "psched/internal/modules/task/dto"
	"psched/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var stateDir, backend string

	root := &cobra.Command{
		Use:           "psched",
		Short:         "Personal task scheduler client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default ~/.psched)")
	root.PersistentFlags().StringVar(&backend, "backend", "", "backend base URL (overrides config)")

	root.AddCommand(newTUICmd(&stateDir, &backend))
	root.AddCommand(newAuthCmd(&stateDir, &backend))
	root.AddCommand(newTaskCmd(&stateDir, &backend))
	root.AddCommand(newChatCmd(&stateDir, &backend))
	root.AddCommand(newConfigCmd(&stateDir))
	return root
}

func loadApp(stateDir, backend string) (*bootstrap.App, error) {
	cfg, err := config.Load(stateDir)
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.BackendURL = backend
	}
	return bootstrap.New(cfg)
}

func newTUICmd(stateDir, backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the psched terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newAuthCmd(stateDir, backend *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Account and session commands"}

	var name, email string
	registerCmd := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			session, err := app.AuthCLI.Register(context.Background(), authdto.RegisterInput{
				Username: args[0],
				Password: args[1],
				Name:     name,
				Email:    email,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s (id=%d)\n", session.Username, session.UserID)
			return nil
		},
	}
	registerCmd.Flags().StringVar(&name, "name", "", "display name (optional)")
	registerCmd.Flags().StringVar(&email, "email", "", "email (optional)")

	loginCmd := &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			session, err := app.AuthCLI.Login(context.Background(), authdto.LoginInput{
				Username: args[0],
				Password: args[1],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (id=%d)\n", session.Username, session.UserID)
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session and local transcripts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.AuthCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			session, err := app.AuthCLI.Current(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (id=%d)", session.Username, session.UserID)
			if session.Email != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " <%s>", session.Email)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	auth.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
	return auth
}

func newTaskCmd(stateDir, backend *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Task commands"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for the current user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			tasks, err := app.TaskCLI.Refresh(context.Background())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range tasks {
				printTask(cmd, t)
			}
			return nil
		},
	}

	var title, desc, priority, date, start, end string
	var due bool
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&title, "title", "", "task title")
		c.Flags().StringVar(&desc, "desc", "", "task description")
		c.Flags().StringVar(&priority, "priority", "Normal", "priority: Low|Normal|High")
		c.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
		c.Flags().StringVar(&start, "time", "", "start time (HH:MM)")
		c.Flags().StringVar(&end, "end", "", "end time (HH:MM), ignored with --due")
		c.Flags().BoolVar(&due, "due", false, "due-date task instead of a time slot")
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			created, err := app.TaskCLI.Add(context.Background(), taskdto.DraftInput{
				Title:       title,
				Description: desc,
				Priority:    priority,
				Date:        date,
				StartTime:   start,
				EndTime:     end,
				IsDueDate:   due,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created task %d\n", created.ID)
			return nil
		},
	}
	addFlags(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			updated, err := app.TaskCLI.Edit(context.Background(), id, taskdto.DraftInput{
				Title:       title,
				Description: desc,
				Priority:    priority,
				Date:        date,
				StartTime:   start,
				EndTime:     end,
				IsDueDate:   due,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated task %d\n", updated.ID)
			return nil
		},
	}
	addFlags(editCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TaskCLI.Delete(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted task %d\n", id)
			return nil
		},
	}

	task.AddCommand(listCmd, addCmd, editCmd, deleteCmd)
	return task
}

func printTask(cmd *cobra.Command, t taskdto.TaskOutput) {
	if t.IsDueDate {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%4d  [%s] %s  due %s\n",
			t.ID, t.Priority, t.Title, t.Deadline.Format("2006-01-02 15:04"))
		return
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%4d  [%s] %s  %s–%s (%dm)\n",
		t.ID, t.Priority, t.Title,
		t.Deadline.Format("2006-01-02 15:04"), t.End.Format("15:04"), t.Minutes)
}

func newChatCmd(stateDir, backend *string) *cobra.Command {
	chat := &cobra.Command{Use: "chat", Short: "Assistant commands"}

	sendCmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a message to the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			text := args[0]
			for _, a := range args[1:] {
				text += " " + a
			}
			exchange, err := app.ChatCLI.Send(context.Background(), text)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), exchange.Assistant.Text)
			if exchange.MutatedTasks {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(task list changed)")
			}
			return nil
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print the stored conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			messages, err := app.ChatCLI.History(context.Background())
			if err != nil {
				return err
			}
			for _, m := range messages {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n",
					m.CreatedAt.Format("2006-01-02 15:04"), m.Sender, m.Text)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*stateDir, *backend)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.ChatCLI.Clear(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "conversation cleared")
			return nil
		},
	}

	chat.AddCommand(sendCmd, historyCmd, clearCmd)
	return chat
}

func newConfigCmd(stateDir *string) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration commands"}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteDefault(*stateDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*stateDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "backend_url:     %s\n", cfg.BackendURL)
			_, _ = fmt.Fprintf(out, "state_dir:       %s\n", cfg.StateDir)
			_, _ = fmt.Fprintf(out, "request_timeout: %s\n", cfg.RequestTimeout)
			return nil
		},
	}

	cfgCmd.AddCommand(initCmd, showCmd)
	return cfgCmd
}
