package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chatdto "psched/internal/modules/chat/dto"
	"psched/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ChatPort interface {
	Send(ctx context.Context, text string) (chatdto.ExchangeOutput, error)
	History(ctx context.Context) ([]chatdto.MessageOutput, error)
	Clear(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type HistoryMsg struct {
	Messages []chatdto.MessageOutput
	Err      error
}

type replyMsg struct {
	exchange chatdto.ExchangeOutput
	err      error
}

// TasksMutatedMsg tells the shell the assistant changed tasks server-side, so
// the task views need a refresh.
type TasksMutatedMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

var (
	userStyle      = lipgloss.NewStyle().Foreground(theme.Sapphire).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(theme.Green).Bold(true)
	bodyStyle      = lipgloss.NewStyle().Foreground(theme.Text)
)

type Model struct {
	port     ChatPort
	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	messages []chatdto.MessageOutput
	pending  string
	waiting  bool
	errText  string
	width    int
	height   int
	ready    bool
}

func New(port ChatPort) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask the assistant…"
	ti.Prompt = "> "
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = theme.Hot

	return Model{
		port:  port,
		input: ti,
		spin:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadHistory(), textinput.Blink)
}

func (m Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		msgs, err := m.port.History(context.Background())
		return HistoryMsg{Messages: msgs, Err: err}
	}
}

// Reload replays the persisted transcript, used after login/logout swaps the
// active user.
func (m Model) Reload() tea.Cmd {
	return m.loadHistory()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - 5
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width - 4
			m.viewport.Height = vpHeight
		}
		m.renderTranscript()

	case HistoryMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
		} else {
			m.errText = ""
			m.messages = msg.Messages
			m.pending = ""
			m.renderTranscript()
			m.viewport.GotoBottom()
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			// The user half was persisted before the relay, so promote the
			// echo to a real entry instead of dropping it.
			if m.pending != "" {
				m.messages = append(m.messages, chatdto.MessageOutput{
					Text:      m.pending,
					Sender:    "user",
					CreatedAt: time.Now(),
				})
				m.pending = ""
			}
			m.errText = msg.err.Error()
			m.renderTranscript()
			break
		}
		m.pending = ""
		m.errText = ""
		m.messages = append(m.messages, msg.exchange.User, msg.exchange.Assistant)
		m.renderTranscript()
		m.viewport.GotoBottom()
		if msg.exchange.MutatedTasks {
			cmds = append(cmds, func() tea.Msg { return TasksMutatedMsg{} })
		}

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if !m.waiting {
				text := strings.TrimSpace(m.input.Value())
				if text != "" {
					m.input.SetValue("")
					m.waiting = true
					// Echo immediately; the persisted exchange replaces the
					// echo when the reply lands.
					m.pending = text
					m.renderTranscript()
					m.viewport.GotoBottom()
					cmds = append(cmds, m.send(text), m.spin.Tick)
				}
			}
			return m, tea.Batch(cmds...)
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		exchange, err := m.port.Send(context.Background(), text)
		return replyMsg{exchange: exchange, err: err}
	}
}

func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

// Typing reports whether the text input currently owns the keyboard, so the
// shell passes plain keys through instead of treating them as shortcuts.
func (m Model) Typing() bool { return m.input.Focused() }

func (m *Model) renderTranscript() {
	if !m.ready {
		return
	}
	var sb strings.Builder
	for _, msg := range m.messages {
		label := userStyle.Render("you")
		if msg.Sender == "assistant" {
			label = assistantStyle.Render("assistant")
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", label, theme.Muted.Render(msg.CreatedAt.Format("15:04"))))
		sb.WriteString(bodyStyle.Width(m.viewport.Width).Render(msg.Text) + "\n\n")
	}
	if m.pending != "" {
		sb.WriteString(fmt.Sprintf("%s  %s\n", userStyle.Render("you"), theme.Muted.Render(time.Now().Format("15:04"))))
		sb.WriteString(bodyStyle.Width(m.viewport.Width).Render(m.pending) + "\n\n")
	}
	m.viewport.SetContent(sb.String())
}

func (m Model) View() string {
	if !m.ready {
		return theme.Muted.Render("loading transcript…")
	}

	var status string
	switch {
	case m.waiting:
		status = m.spin.View() + " thinking…"
	case m.errText != "":
		status = theme.Err.Render(m.errText)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Pane.Width(m.width-2).Render(m.viewport.View()),
		" "+m.input.View(),
		" "+status,
	)
}
