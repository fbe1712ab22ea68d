package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskdto "psched/internal/modules/task/dto"
	"psched/internal/ui/theme"
)

// TaskFormSubmitMsg carries a completed draft. ID is zero for a new task.
type TaskFormSubmitMsg struct {
	ID    int
	Input taskdto.DraftInput
}

// TaskFormCancelMsg is emitted when the user closes the form unsaved.
type TaskFormCancelMsg struct{}

const (
	fieldTitle = iota
	fieldDescription
	fieldDate
	fieldStart
	fieldEnd
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title", "Description", "Date (YYYY-MM-DD)", "Start (HH:MM)", "End (HH:MM)",
}

var priorities = []string{"Low", "Normal", "High"}

var (
	formStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	formHintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// TaskForm is the create/edit overlay shared by the tasks and calendar views.
// It holds fully local state until submit; validation happens downstream and
// errors come back through SetError, leaving the form open for correction.
type TaskForm struct {
	inputs   [fieldCount]textinput.Model
	focus    int
	priority int
	dueDate  bool
	editID   int
	visible  bool
	errText  string
	width    int
}

func NewTaskForm() TaskForm {
	var f TaskForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	f.inputs[fieldDate].Placeholder = "2006-01-02"
	f.inputs[fieldStart].Placeholder = "12:00"
	f.inputs[fieldEnd].Placeholder = "13:00"
	f.priority = 1
	return f
}

func (f TaskForm) Visible() bool { return f.visible }

// OpenCreate shows an empty form, optionally prefilled with a calendar
// selection.
func (f *TaskForm) OpenCreate(date, start, end string) tea.Cmd {
	f.reset()
	f.editID = 0
	f.inputs[fieldDate].SetValue(date)
	if start != "" {
		f.inputs[fieldStart].SetValue(start)
	}
	if end != "" {
		f.inputs[fieldEnd].SetValue(end)
	}
	f.visible = true
	return f.focusField(fieldTitle)
}

// OpenEdit shows the form prefilled from an existing task.
func (f *TaskForm) OpenEdit(task taskdto.TaskOutput) tea.Cmd {
	f.reset()
	f.editID = task.ID
	f.inputs[fieldTitle].SetValue(task.Title)
	f.inputs[fieldDescription].SetValue(task.Description)
	f.inputs[fieldDate].SetValue(task.Deadline.Format("2006-01-02"))
	f.inputs[fieldStart].SetValue(task.Deadline.Format("15:04"))
	f.inputs[fieldEnd].SetValue(task.End.Format("15:04"))
	f.dueDate = task.IsDueDate
	for i, p := range priorities {
		if p == task.Priority {
			f.priority = i
		}
	}
	f.visible = true
	return f.focusField(fieldTitle)
}

func (f *TaskForm) Close() {
	f.visible = false
	f.errText = ""
	f.inputs[f.focus].Blur()
}

// SetError keeps the form open and shows the failure inline.
func (f *TaskForm) SetError(text string) { f.errText = text }

func (f *TaskForm) SetWidth(w int) { f.width = w }

func (f TaskForm) Update(msg tea.Msg) (TaskForm, tea.Cmd) {
	if !f.visible {
		return f, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			f.Close()
			return f, func() tea.Msg { return TaskFormCancelMsg{} }
		case "tab", "down":
			return f, f.focusField((f.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return f, f.focusField((f.focus + fieldCount - 1) % fieldCount)
		case "ctrl+p":
			f.priority = (f.priority + 1) % len(priorities)
			return f, nil
		case "ctrl+d":
			f.dueDate = !f.dueDate
			return f, nil
		case "enter":
			return f, f.submit()
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *TaskForm) submit() tea.Cmd {
	input := taskdto.DraftInput{
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Priority:    priorities[f.priority],
		Date:        strings.TrimSpace(f.inputs[fieldDate].Value()),
		StartTime:   strings.TrimSpace(f.inputs[fieldStart].Value()),
		EndTime:     strings.TrimSpace(f.inputs[fieldEnd].Value()),
		IsDueDate:   f.dueDate,
	}
	id := f.editID
	return func() tea.Msg { return TaskFormSubmitMsg{ID: id, Input: input} }
}

func (f TaskForm) View() string {
	if !f.visible {
		return ""
	}
	var sb strings.Builder
	title := "New Task"
	if f.editID != 0 {
		title = "Edit Task"
	}
	sb.WriteString(theme.Title.Render(title) + "\n\n")

	for i := 0; i < fieldCount; i++ {
		if f.dueDate && i == fieldEnd {
			continue
		}
		label := fieldLabels[i]
		if i == f.focus {
			sb.WriteString(theme.Hot.Render("> "))
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(theme.Muted.Render(label+": ") + f.inputs[i].View() + "\n")
	}

	prioStyle := lipgloss.NewStyle().Foreground(theme.PriorityColor(priorities[f.priority]))
	sb.WriteString("\n  " + theme.Muted.Render("Priority: ") + prioStyle.Render(priorities[f.priority]))
	kind := "time slot"
	if f.dueDate {
		kind = "due date"
	}
	sb.WriteString("   " + theme.Muted.Render("Kind: ") + kind + "\n")

	if f.errText != "" {
		sb.WriteString("\n" + theme.Err.Render(f.errText) + "\n")
	}
	sb.WriteString("\n" + formHintStyle.Render("enter: save  esc: cancel  ctrl+p: priority  ctrl+d: due-date"))

	w := f.width
	if w < 30 {
		w = 64
	}
	return formStyle.Width(w - 2).Render(sb.String())
}

func (f *TaskForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.priority = 1
	f.dueDate = false
	f.errText = ""
	f.focus = 0
}

func (f *TaskForm) focusField(idx int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = idx
	return f.inputs[f.focus].Focus()
}
