package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskdto "psched/internal/modules/task/dto"
	"psched/internal/ui/components"
	"psched/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TaskPort interface {
	Refresh(ctx context.Context) ([]taskdto.TaskOutput, error)
	EventsOn(ctx context.Context, day time.Time) []taskdto.EventOutput
	DayPriority(ctx context.Context, day time.Time) string
	Add(ctx context.Context, input taskdto.DraftInput) (taskdto.TaskOutput, error)
	Edit(ctx context.Context, id int, input taskdto.DraftInput) (taskdto.TaskOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Err error
}

type formErrMsg struct{ err error }
type formOKMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders a month grid beside the selected day's agenda. Day cells take
// the color of their most urgent event. Selecting an event opens the edit
// form; selecting an empty hour range opens the create form prefilled with
// that range.
type Model struct {
	port    Port
	form    components.TaskForm
	focused time.Time
	cursor  int
	agenda  bool
	hour    int
	span    int
	width   int
	height  int
	errText string
}

// Port aliases TaskPort so the constructor reads like the other views.
type Port = TaskPort

func New(port Port) Model {
	now := time.Now()
	return Model{
		port:    port,
		form:    components.NewTaskForm(),
		focused: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
		hour:    9,
		span:    1,
	}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Refresh(context.Background())
		return LoadedMsg{Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form.Visible() {
		switch msg := msg.(type) {
		case components.TaskFormSubmitMsg:
			return m, m.submitForm(msg)
		case components.TaskFormCancelMsg:
			return m, nil
		case formErrMsg:
			m.form.SetError(msg.err.Error())
			return m, nil
		case formOKMsg:
			m.form.Close()
			return m, nil
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetWidth(min(m.width-4, 72))

	case LoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
		} else {
			m.errText = ""
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.agenda {
		events := m.dayEvents()
		switch msg.String() {
		case "esc":
			m.agenda = false
		case "j", "down":
			if m.cursor < len(events)-1 {
				m.cursor++
			} else if m.hour < 23 {
				m.hour++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			} else if m.hour > 0 {
				m.hour--
			}
		case "+":
			if m.hour+m.span < 24 {
				m.span++
			}
		case "-":
			if m.span > 1 {
				m.span--
			}
		case "enter", "e":
			if m.cursor < len(events) {
				return m, m.openEdit(events[m.cursor].Task)
			}
		case "a":
			return m, m.openCreate()
		}
		return m, nil
	}

	switch msg.String() {
	case "h", "left":
		m.focused = m.focused.AddDate(0, 0, -1)
	case "l", "right":
		m.focused = m.focused.AddDate(0, 0, 1)
	case "j", "down":
		m.focused = m.focused.AddDate(0, 0, 7)
	case "k", "up":
		m.focused = m.focused.AddDate(0, 0, -7)
	case "[":
		m.focused = m.focused.AddDate(0, -1, 0)
	case "]":
		m.focused = m.focused.AddDate(0, 1, 0)
	case "t":
		now := time.Now()
		m.focused = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	case "enter":
		m.agenda = true
		m.cursor = 0
	case "a":
		return m, m.openCreate()
	case "r":
		return m, m.Reload()
	}
	return m, nil
}

func (m Model) View() string {
	if m.form.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
	}

	gridW := m.width * 5 / 10
	agendaW := m.width - gridW

	gridPane := lipgloss.NewStyle().
		Width(gridW).
		Height(m.height).
		Render(m.renderMonth(gridW))

	agendaStyle := theme.Pane
	if m.agenda {
		agendaStyle = theme.PaneActive
	}
	agendaPane := agendaStyle.
		Width(agendaW - 2).
		Height(m.height - 2).
		Render(m.renderAgenda())

	return lipgloss.JoinHorizontal(lipgloss.Top, gridPane, agendaPane)
}

// Filtering matches the other views' interface; the calendar has no filter.
func (m Model) Filtering() bool { return false }

func (m Model) FormOpen() bool { return m.form.Visible() }

// ─── rendering ───────────────────────────────────────────────────────────────

func (m Model) renderMonth(width int) string {
	first := time.Date(m.focused.Year(), m.focused.Month(), 1, 0, 0, 0, 0, time.Local)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(first.Format("January 2006")) + "\n\n")
	sb.WriteString(theme.Muted.Render(" Mo  Tu  We  Th  Fr  Sa  Su") + "\n")

	// Monday-first offset for the leading blanks.
	offset := (int(first.Weekday()) + 6) % 7
	sb.WriteString(strings.Repeat("    ", offset))

	daysInMonth := first.AddDate(0, 1, -1).Day()
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.Local)
		cell := fmt.Sprintf("%3d ", day)

		style := lipgloss.NewStyle()
		if prio := m.port.DayPriority(context.Background(), date); prio != "" {
			style = style.Foreground(theme.PriorityColor(prio))
		} else {
			style = style.Foreground(theme.Text)
		}
		if sameDay(date, m.focused) {
			style = style.Reverse(true).Bold(true)
		}
		sb.WriteString(style.Render(cell))

		col++
		if col%7 == 0 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n\n")
	if m.errText != "" {
		sb.WriteString(theme.Err.Render(m.errText) + "\n")
	}
	sb.WriteString(theme.Muted.Render("h/l: day  j/k: week  [/]: month  t: today\nenter: agenda  a: add  r: refresh"))
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func (m Model) renderAgenda() string {
	events := m.dayEvents()

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.focused.Format("Monday, Jan 2")) + "\n\n")

	if len(events) == 0 {
		sb.WriteString(theme.Muted.Render("No tasks this day") + "\n")
	}
	for i, ev := range events {
		style := lipgloss.NewStyle().Foreground(theme.PriorityColor(ev.Task.Priority))
		line := fmt.Sprintf("%s–%s  %s", ev.Start.Format("15:04"), ev.End.Format("15:04"), ev.Task.Title)
		if ev.Marker {
			line = fmt.Sprintf("%s      ◆ %s (due)", ev.Start.Format("15:04"), ev.Task.Title)
		}
		if m.agenda && i == m.cursor {
			style = style.Reverse(true)
		}
		sb.WriteString(style.Render(line) + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("slot: %02d:00–%02d:00", m.hour, m.hour+m.span)) + "\n")
	if m.agenda {
		sb.WriteString("\n" + theme.Muted.Render("j/k: move  +/-: span  enter: edit  a: add in slot  esc: back"))
	} else {
		sb.WriteString("\n" + theme.Muted.Render("enter: focus agenda"))
	}
	return sb.String()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) dayEvents() []taskdto.EventOutput {
	return m.port.EventsOn(context.Background(), m.focused)
}

// openCreate prefills the form with the selected day and hour slot, the TUI
// equivalent of dragging a range on the grid.
func (m *Model) openCreate() tea.Cmd {
	m.form.SetWidth(min(m.width-4, 72))
	return m.form.OpenCreate(
		m.focused.Format("2006-01-02"),
		fmt.Sprintf("%02d:00", m.hour),
		fmt.Sprintf("%02d:00", m.hour+m.span),
	)
}

func (m *Model) openEdit(task taskdto.TaskOutput) tea.Cmd {
	m.form.SetWidth(min(m.width-4, 72))
	return m.form.OpenEdit(task)
}

func (m *Model) submitForm(msg components.TaskFormSubmitMsg) tea.Cmd {
	id := msg.ID
	input := msg.Input
	return func() tea.Msg {
		var err error
		if id == 0 {
			_, err = m.port.Add(context.Background(), input)
		} else {
			_, err = m.port.Edit(context.Background(), id, input)
		}
		if err != nil {
			return formErrMsg{err: err}
		}
		return formOKMsg{}
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
