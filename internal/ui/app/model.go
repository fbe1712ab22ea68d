package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "psched/internal/modules/auth/dto"
	chatdto "psched/internal/modules/chat/dto"
	taskdto "psched/internal/modules/task/dto"
	apperrors "psched/internal/platform/errors"
	"psched/internal/ui/components"
	"psched/internal/ui/theme"
	calendarview "psched/internal/ui/views/calendar"
	chatview "psched/internal/ui/views/chat"
	loginview "psched/internal/ui/views/login"
	tasksview "psched/internal/ui/views/tasks"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Register(ctx context.Context, input authdto.RegisterInput) (authdto.SessionOutput, error)
	Login(ctx context.Context, input authdto.LoginInput) (authdto.SessionOutput, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (authdto.SessionOutput, error)
}

type taskPort interface {
	Refresh(ctx context.Context) ([]taskdto.TaskOutput, error)
	Tasks(ctx context.Context) []taskdto.TaskOutput
	EventsOn(ctx context.Context, day time.Time) []taskdto.EventOutput
	DayPriority(ctx context.Context, day time.Time) string
	Add(ctx context.Context, input taskdto.DraftInput) (taskdto.TaskOutput, error)
	Edit(ctx context.Context, id int, input taskdto.DraftInput) (taskdto.TaskOutput, error)
	Delete(ctx context.Context, id int) error
	State(ctx context.Context) taskdto.CacheState
	Invalidations() <-chan taskdto.Invalidation
}

type chatPort interface {
	Send(ctx context.Context, text string) (chatdto.ExchangeOutput, error)
	History(ctx context.Context) ([]chatdto.MessageOutput, error)
	Clear(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTasks tabID = iota
	tabCalendar
	tabChat
	tabCount
)

var tabLabels = [tabCount]string{"Tasks", "Calendar", "Chat"}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionLoadedMsg struct {
	session authdto.SessionOutput
	err     error
}

type loggedOutMsg struct{ err error }

type chatClearedMsg struct{ err error }

type invalidationMsg struct{ inv taskdto.Invalidation }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Add     key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Add, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the auth gate, tab routing,
// the global help overlay, and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	auth authPort
	task taskPort
	chat chatPort

	loginView loginview.Model
	taskView  tasksview.Model
	calView   calendarview.Model
	chatView  chatview.Model

	session  authdto.SessionOutput
	loggedIn bool

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int

	// invalidations is subscribed once; re-arming the listener reuses it.
	invalidations <-chan taskdto.Invalidation
}

func NewModel(auth authPort, task taskPort, chat chatPort) Model {
	return Model{
		auth:      auth,
		task:      task,
		chat:      chat,
		loginView: loginview.New(authPortBridge{p: auth}),
		taskView:  tasksview.New(taskPortBridge{p: task}),
		calView:   calendarview.New(taskPortBridge{p: task}),
		chatView:  chatview.New(chatPortBridge{p: chat}),
		activeTab: tabTasks,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",

		invalidations: task.Invalidations(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loginView.Init(),
		m.loadSessionCmd(),
		waitInvalidation(m.invalidations),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		return m.propagateSize(msg)

	case sessionLoadedMsg:
		if msg.err != nil {
			// No stored session: stay on the login screen.
			if msg.err != apperrors.ErrNotLoggedIn {
				m.status = "session check: " + msg.err.Error()
			}
			return m, nil
		}
		return m.enterSession(msg.session)

	case loginview.AuthenticatedMsg:
		return m.enterSession(msg.Session)

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "logout failed: " + msg.err.Error()
			return m, nil
		}
		m.loggedIn = false
		m.session = authdto.SessionOutput{}
		m.loginView = loginview.New(authPortBridge{p: m.auth})
		m.status = "logged out"
		return m, tea.Batch(m.loginView.Init(), m.sizeCmd())

	case chatClearedMsg:
		if msg.err != nil {
			m.status = "clear failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "conversation cleared"
		return m, m.chatView.Reload()

	case invalidationMsg:
		// The cache already refetched; the views only re-read the snapshot.
		m.status = "tasks updated (" + msg.inv.Source + ")"
		cmds = append(cmds,
			m.taskView.Reload(),
			m.calView.Reload(),
			waitInvalidation(m.invalidations),
		)
		return m, tea.Batch(cmds...)

	case chatview.TasksMutatedMsg:
		cmds = append(cmds, m.taskView.Reload(), m.calView.Reload())
		return m, tea.Batch(cmds...)

	// Loads finish asynchronously; deliver them to their owning view even
	// when another tab has focus.
	case tasksview.LoadedMsg:
		var cmd tea.Cmd
		m.taskView, cmd = m.taskView.Update(msg)
		return m, cmd

	case calendarview.LoadedMsg:
		var cmd tea.Cmd
		m.calView, cmd = m.calView.Update(msg)
		return m, cmd

	case chatview.HistoryMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil
	}

	if !m.loggedIn {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// ctrl+c and tab work everywhere; the rest of the global keys yield
		// while a sub-view owns the keyboard.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m.switchTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		}

		if !m.subViewBusy() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = !m.showHelp
				return m, nil
			case ":":
				return m, m.palette.Open()
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTasks:
		m.taskView, tabCmd = m.taskView.Update(msg)
	case tabCalendar:
		m.calView, tabCmd = m.calView.Update(msg)
	case tabChat:
		m.chatView, tabCmd = m.chatView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.loggedIn {
		return m.loginView.View()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTasks:
		return m.taskView.View()
	case tabCalendar:
		return m.calView.View()
	case tabChat:
		return m.chatView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "psched  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	state := m.task.State(context.Background())
	left := m.status
	switch {
	case state.Refreshing:
		left = "refreshing…  " + left
	case state.LastError != "":
		left = theme.Err.Render(state.LastError) + "  " + left
	}
	if m.session.DisplayName != "" {
		left = theme.Hot.Render("● "+m.session.DisplayName) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "task:add":
		m.activeTab = tabTasks
		return m, m.taskView.OpenCreateForm()

	case "task:edit":
		m.activeTab = tabTasks
		cmd, ok := m.taskView.OpenEditForm()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, cmd

	case "task:delete":
		m.activeTab = tabTasks
		if !m.taskView.RequestDelete() {
			m.status = "no task selected"
		}
		return m, nil

	case "task:refresh":
		m.status = "refreshing"
		return m, tea.Batch(m.taskView.Reload(), m.calView.Reload())

	case "chat:clear":
		return m, func() tea.Msg {
			return chatClearedMsg{err: m.chat.Clear(context.Background())}
		}

	case "auth:logout":
		return m, m.logoutCmd()

	case "auth:whoami":
		if m.session.DisplayName != "" {
			m.status = "logged in as " + m.session.Username + " (" + m.session.DisplayName + ")"
		} else {
			m.status = "not logged in"
		}
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
		return m, nil
	}
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.auth.Current(context.Background())
		return sessionLoadedMsg{session: session, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.auth.Logout(context.Background())}
	}
}

func waitInvalidation(ch <-chan taskdto.Invalidation) tea.Cmd {
	return func() tea.Msg {
		return invalidationMsg{inv: <-ch}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) enterSession(session authdto.SessionOutput) (tea.Model, tea.Cmd) {
	m.session = session
	m.loggedIn = true
	m.status = "welcome, " + session.DisplayName
	var focus tea.Cmd
	if m.activeTab == tabChat {
		focus = m.chatView.Focus()
	}
	return m, tea.Batch(
		m.taskView.Init(),
		m.calView.Init(),
		m.chatView.Reload(),
		m.sizeCmd(),
		focus,
	)
}

func (m Model) switchTab(tab tabID) (tea.Model, tea.Cmd) {
	if m.activeTab == tabChat && tab != tabChat {
		m.chatView.Blur()
	}
	m.activeTab = tab
	if tab == tabChat {
		return m, m.chatView.Focus()
	}
	return m, nil
}

// subViewBusy reports whether the focused sub-view owns plain keystrokes
// (list filter, form overlay, or the chat input).
func (m Model) subViewBusy() bool {
	switch m.activeTab {
	case tabTasks:
		return m.taskView.Filtering() || m.taskView.FormOpen()
	case tabCalendar:
		return m.calView.FormOpen()
	case tabChat:
		return m.chatView.Typing()
	}
	return false
}

func (m Model) propagateSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.loginView, cmd = m.loginView.Update(msg)
	cmds = append(cmds, cmd)

	// The tab bar and status bar take two lines each; see View.
	content := msg
	content.Height = msg.Height - 4
	if content.Height < 1 {
		content.Height = 1
	}
	m.taskView, cmd = m.taskView.Update(content)
	cmds = append(cmds, cmd)
	m.calView, cmd = m.calView.Update(content)
	cmds = append(cmds, cmd)
	m.chatView, cmd = m.chatView.Update(content)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// sizeCmd replays the last known size so freshly swapped views lay out.
func (m Model) sizeCmd() tea.Cmd {
	if m.width == 0 {
		return nil
	}
	w, h := m.width, m.height
	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ─── port bridges ────────────────────────────────────────────────────────────

type authPortBridge struct{ p authPort }

func (b authPortBridge) Login(ctx context.Context, input authdto.LoginInput) (authdto.SessionOutput, error) {
	return b.p.Login(ctx, input)
}
func (b authPortBridge) Register(ctx context.Context, input authdto.RegisterInput) (authdto.SessionOutput, error) {
	return b.p.Register(ctx, input)
}

type taskPortBridge struct{ p taskPort }

func (b taskPortBridge) Refresh(ctx context.Context) ([]taskdto.TaskOutput, error) {
	return b.p.Refresh(ctx)
}
func (b taskPortBridge) Tasks(ctx context.Context) []taskdto.TaskOutput {
	return b.p.Tasks(ctx)
}
func (b taskPortBridge) EventsOn(ctx context.Context, day time.Time) []taskdto.EventOutput {
	return b.p.EventsOn(ctx, day)
}
func (b taskPortBridge) DayPriority(ctx context.Context, day time.Time) string {
	return b.p.DayPriority(ctx, day)
}
func (b taskPortBridge) Add(ctx context.Context, input taskdto.DraftInput) (taskdto.TaskOutput, error) {
	return b.p.Add(ctx, input)
}
func (b taskPortBridge) Edit(ctx context.Context, id int, input taskdto.DraftInput) (taskdto.TaskOutput, error) {
	return b.p.Edit(ctx, id, input)
}
func (b taskPortBridge) Delete(ctx context.Context, id int) error {
	return b.p.Delete(ctx, id)
}
func (b taskPortBridge) State(ctx context.Context) taskdto.CacheState {
	return b.p.State(ctx)
}

type chatPortBridge struct{ p chatPort }

func (b chatPortBridge) Send(ctx context.Context, text string) (chatdto.ExchangeOutput, error) {
	return b.p.Send(ctx, text)
}
func (b chatPortBridge) History(ctx context.Context) ([]chatdto.MessageOutput, error) {
	return b.p.History(ctx)
}
func (b chatPortBridge) Clear(ctx context.Context) error {
	return b.p.Clear(ctx)
}
