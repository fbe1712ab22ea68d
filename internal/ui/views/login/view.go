package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "psched/internal/modules/auth/dto"
	"psched/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AuthPort interface {
	Login(ctx context.Context, input authdto.LoginInput) (authdto.SessionOutput, error)
	Register(ctx context.Context, input authdto.RegisterInput) (authdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// AuthenticatedMsg bubbles up to the app model to unlock the tabs.
type AuthenticatedMsg struct {
	Session authdto.SessionOutput
}

type resultMsg struct {
	session authdto.SessionOutput
	err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldUsername = iota
	fieldPassword
	fieldName
	fieldEmail
	fieldCount
)

type Model struct {
	port       AuthPort
	inputs     [fieldCount]textinput.Model
	focus      int
	registerOn bool
	submitting bool
	errText    string
	width      int
	height     int
}

func New(port AuthPort) Model {
	var m Model
	labels := [fieldCount]string{"username", "password", "name (optional)", "email (optional)"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 128
		ti.Prompt = ""
		m.inputs[i] = ti
	}
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.port = port
	return m
}

func (m Model) Init() tea.Cmd {
	return m.inputs[fieldUsername].Focus()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case resultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		session := msg.session
		return m, func() tea.Msg { return AuthenticatedMsg{Session: session} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m, m.focusField((m.focus + 1) % m.fieldLimit())
		case "shift+tab", "up":
			limit := m.fieldLimit()
			return m, m.focusField((m.focus + limit - 1) % limit)
		case "ctrl+r":
			m.registerOn = !m.registerOn
			m.errText = ""
			if m.focus >= m.fieldLimit() {
				return m, m.focusField(0)
			}
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	if m.registerOn {
		sb.WriteString(theme.Title.Render("Create an account") + "\n\n")
	} else {
		sb.WriteString(theme.Title.Render("Log in") + "\n\n")
	}

	for i := 0; i < m.fieldLimit(); i++ {
		if i == m.focus {
			sb.WriteString(theme.Hot.Render("> "))
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(m.inputs[i].View() + "\n")
	}

	if m.submitting {
		sb.WriteString("\n" + theme.Muted.Render("contacting server…"))
	} else if m.errText != "" {
		sb.WriteString("\n" + theme.Err.Render(m.errText))
	}

	mode := "ctrl+r: switch to register"
	if m.registerOn {
		mode = "ctrl+r: switch to login"
	}
	sb.WriteString("\n\n" + theme.Muted.Render("enter: submit  "+mode))

	box := theme.Pane.Width(48).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ─── private ─────────────────────────────────────────────────────────────────

// fieldLimit hides the profile fields in login mode.
func (m Model) fieldLimit() int {
	if m.registerOn {
		return fieldCount
	}
	return fieldName
}

func (m *Model) focusField(idx int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = idx
	return m.inputs[m.focus].Focus()
}

func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()
	if username == "" || password == "" {
		m.errText = "username and password are required"
		return m, nil
	}
	m.submitting = true
	m.errText = ""

	if m.registerOn {
		name := strings.TrimSpace(m.inputs[fieldName].Value())
		email := strings.TrimSpace(m.inputs[fieldEmail].Value())
		return m, func() tea.Msg {
			session, err := m.port.Register(context.Background(), authdto.RegisterInput{
				Username: username,
				Password: password,
				Name:     name,
				Email:    email,
			})
			return resultMsg{session: session, err: err}
		}
	}
	return m, func() tea.Msg {
		session, err := m.port.Login(context.Background(), authdto.LoginInput{
			Username: username,
			Password: password,
		})
		return resultMsg{session: session, err: err}
	}
}
