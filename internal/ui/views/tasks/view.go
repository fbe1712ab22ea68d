package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskdto "psched/internal/modules/task/dto"
	"psched/internal/ui/components"
	"psched/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TaskPort interface {
	Refresh(ctx context.Context) ([]taskdto.TaskOutput, error)
	Tasks(ctx context.Context) []taskdto.TaskOutput
	Add(ctx context.Context, input taskdto.DraftInput) (taskdto.TaskOutput, error)
	Edit(ctx context.Context, id int, input taskdto.DraftInput) (taskdto.TaskOutput, error)
	Delete(ctx context.Context, id int) error
	State(ctx context.Context) taskdto.CacheState
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Tasks []taskdto.TaskOutput
	Err   error
}

type mutatedMsg struct {
	err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task taskdto.TaskOutput
}

func (i taskItem) Title() string {
	icon := priorityIcon(i.task.Priority)
	if i.task.IsDueDate {
		return fmt.Sprintf("%s %s (due)", icon, i.task.Title)
	}
	return fmt.Sprintf("%s %s", icon, i.task.Title)
}

func (i taskItem) Description() string {
	if i.task.IsDueDate {
		return i.task.Deadline.Format("Mon Jan 2 15:04")
	}
	return fmt.Sprintf("%s – %s  (%dm)",
		i.task.Deadline.Format("Mon Jan 2 15:04"),
		i.task.End.Format("15:04"),
		i.task.Minutes)
}

func (i taskItem) FilterValue() string { return i.task.Title }

func priorityIcon(priority string) string {
	switch priority {
	case "High":
		return "●"
	case "Low":
		return "○"
	default:
		return "◐"
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       TaskPort
	list       list.Model
	preview    viewport.Model
	spinner    spinner.Model
	form       components.TaskForm
	loading    bool
	pendingDel int
	width      int
	height     int
}

func New(port TaskPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		form:    components.NewTaskForm(),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload issues a cache refresh; the cache's own guard absorbs duplicates.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.port.Refresh(context.Background())
		return LoadedMsg{Tasks: tasks, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The form intercepts all input while open.
	if m.form.Visible() {
		switch msg := msg.(type) {
		case components.TaskFormSubmitMsg:
			return m, m.submitForm(msg)
		case components.TaskFormCancelMsg:
			return m, nil
		case formErrMsg:
			// Leave the form open for correction.
			m.form.SetError(msg.err.Error())
			return m, nil
		case formOKMsg:
			m.form.Close()
			return m, m.setItems(m.port.Tasks(context.Background()))
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
			m.resize()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Tasks — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Tasks"
		cmds = append(cmds, m.setItems(msg.Tasks))

	case mutatedMsg:
		if msg.err != nil {
			// Deletion failures stay in the status line; the cache keeps the
			// entry so the list still matches the server.
			m.list.Title = "Tasks — " + msg.err.Error()
			return m, nil
		}
		m.list.Title = "Tasks"
		cmds = append(cmds, m.setItems(m.port.Tasks(context.Background())))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "a":
			cmds = append(cmds, m.form.OpenCreate("", "", ""))
			m.form.SetWidth(min(m.width-4, 72))
			return m, tea.Batch(cmds...)
		case "e":
			if cmd, ok := m.OpenEditForm(); ok {
				cmds = append(cmds, cmd)
				return m, tea.Batch(cmds...)
			}
		case "d":
			if m.RequestDelete() {
				return m, nil
			}
		case "y":
			if m.pendingDel != 0 {
				id := m.pendingDel
				m.pendingDel = 0
				return m, m.deleteCmd(id)
			}
		case "n", "esc":
			if m.pendingDel != 0 {
				m.pendingDel = 0
				m.list.Title = "Tasks"
				return m, nil
			}
		case "r":
			m.loading = true
			cmds = append(cmds, m.Reload(), m.spinner.Tick)
			return m, tea.Batch(cmds...)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		m.syncPreview()

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading tasks…")
	}
	if m.form.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is active, so the app
// model yields global keys.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// FormOpen reports whether the create/edit overlay owns the keyboard.
func (m Model) FormOpen() bool {
	return m.form.Visible()
}

// SelectedTask returns the current selection, if any.
func (m Model) SelectedTask() (taskdto.TaskOutput, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task, true
	}
	return taskdto.TaskOutput{}, false
}

// OpenCreateForm is used by the app model's palette commands.
func (m *Model) OpenCreateForm() tea.Cmd {
	m.form.SetWidth(min(m.width-4, 72))
	return m.form.OpenCreate("", "", "")
}

// OpenEditForm opens the overlay for the current selection.
func (m *Model) OpenEditForm() (tea.Cmd, bool) {
	task, ok := m.SelectedTask()
	if !ok {
		return nil, false
	}
	m.form.SetWidth(min(m.width-4, 72))
	return m.form.OpenEdit(task), true
}

// RequestDelete arms the y/n confirmation for the current selection.
func (m *Model) RequestDelete() bool {
	task, ok := m.SelectedTask()
	if !ok {
		return false
	}
	m.pendingDel = task.ID
	m.list.Title = fmt.Sprintf("Tasks — delete %q? y/n", task.Title)
	return true
}

// ─── private ─────────────────────────────────────────────────────────────────

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

type formErrMsg struct{ err error }
type formOKMsg struct{}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	m.form.SetWidth(min(m.width-4, 72))
}

func (m *Model) setItems(tasks []taskdto.TaskOutput) tea.Cmd {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	cmd := m.list.SetItems(items)
	m.syncPreview()
	return cmd
}

func (m *Model) syncPreview() {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		m.preview.SetContent(renderDetail(item.task))
	} else {
		m.preview.SetContent(theme.Muted.Render("Select a task to see details"))
	}
}

func renderDetail(t taskdto.TaskOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(t.Title) + "\n\n")
	prioStyle := lipgloss.NewStyle().Foreground(theme.PriorityColor(t.Priority))
	sb.WriteString(theme.Muted.Render("priority: ") + prioStyle.Render(t.Priority) + "\n")
	if t.IsDueDate {
		sb.WriteString(theme.Muted.Render("due:      ") + t.Deadline.Format("Mon Jan 2 2006 15:04") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("start:    ") + t.Deadline.Format("Mon Jan 2 2006 15:04") + "\n")
		sb.WriteString(theme.Muted.Render("end:      ") + t.End.Format("15:04") + "\n")
		sb.WriteString(fmt.Sprintf("%s%d minutes\n", theme.Muted.Render("length:   "), t.Minutes))
	}
	if t.Description != "" {
		sb.WriteString("\n" + t.Description + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("a: add  e: edit  d: delete  r: refresh"))
	return sb.String()
}

func (m *Model) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		err := m.port.Delete(context.Background(), id)
		return mutatedMsg{err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
