package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/collection"
	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/schedule"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
	"github.com/nhle/dashboard/internal/ui/command"
	configview "github.com/nhle/dashboard/internal/ui/config"
	"github.com/nhle/dashboard/internal/ui/entryform"
	helpview "github.com/nhle/dashboard/internal/ui/help"
	"github.com/nhle/dashboard/internal/ui/notes"
	"github.com/nhle/dashboard/internal/ui/panels"
	"github.com/nhle/dashboard/internal/ui/projectmgr"
	"github.com/nhle/dashboard/internal/ui/todolist"
)

// toastDuration is how long a status bar toast stays visible.
const toastDuration = 3 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewConfig
	ViewHelp
	ViewCommand
	ViewEntry
)

// Focus identifies the dashboard panel receiving keys.
type Focus int

const (
	FocusTodos Focus = iota
	FocusNotes
	FocusProjects
	FocusWeather
	FocusQuote
	FocusMetrics
	FocusNetwork
	FocusBattery
	focusCount
)

type startupMsg struct{}

type themeToggledMsg struct {
	settings model.Settings
	err      error
}

type toastExpiredMsg struct{ seq int }

type toast struct {
	text  string
	isErr bool
	seq   int
}

// Model is the root Bubble Tea model that manages view routing, panel
// focus, layout and the scheduler.
type Model struct {
	ctx          *Context
	currentView  ViewState
	previousView ViewState
	focus        Focus
	layout       ui.Layout
	keys         *keys.KeyMap

	clock    panels.Clock
	weather  panels.Weather
	quote    panels.Quote
	metrics  panels.Metrics
	network  panels.Network
	battery  panels.Battery
	todos    todolist.Model
	notes    notes.Model
	projects projectmgr.Model

	entryView   entryform.Model
	configView  configview.Model
	helpView    helpview.Model
	commandView command.Model

	settings model.Settings
	// cityOverride is a city entered by hand. It wins over the settings
	// city until cleared with an empty entry.
	cityOverride string
	toast        toast
	ready        bool
}

// New creates the root model. c must already be loaded.
func New(c *Context) Model {
	k := keys.DefaultKeyMap()
	s := c.Settings.Current()
	theme.Apply(s.Theme)

	m := Model{
		ctx:         c,
		currentView: ViewDashboard,
		keys:        k,
		clock:       panels.NewClock(time.Now()),
		weather:     panels.NewWeather(c.Weather),
		quote:       panels.NewQuote(c.Quotes),
		metrics:     panels.NewMetrics(c.Probe),
		network:     panels.NewNetwork(c.Probe),
		battery:     panels.NewBattery(c.Probe),
		todos:       todolist.New(c.Todos, k, 40, 10),
		notes:       notes.New(c.Notes, k, 40, 10),
		projects:    projectmgr.New(c.Projects, k, 40, 10),
		entryView:   entryform.New(80, 24),
		configView:  configview.New(c.Settings, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		settings:    s,
	}
	m.clock.ApplySettings(s)
	m.applyFocus()
	return m
}

// Init loads the collections, starts the scheduler and requests the first
// refresh of every remote widget.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todos.Init(),
		m.notes.Init(),
		m.projects.Init(),
		m.ctx.Scheduler.Start(),
		func() tea.Msg { return startupMsg{} },
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.updateActiveView(msg)

	case startupMsg:
		cmd := m.refreshAll()
		return m, cmd

	case schedule.FireMsg:
		cmd := m.handleFire(msg)
		return m, tea.Batch(cmd, m.ctx.Scheduler.Next())

	case toastExpiredMsg:
		if msg.seq == m.toast.seq {
			m.toast = toast{seq: m.toast.seq}
		}
		return m, nil

	case todolist.AddRequestMsg:
		cmd := m.openEntry(entryform.KindTodo, "")
		return m, cmd
	case notes.AddRequestMsg:
		cmd := m.openEntry(entryform.KindNote, "")
		return m, cmd
	case projectmgr.AddRequestMsg:
		cmd := m.openEntry(entryform.KindProject, "")
		return m, cmd

	case entryform.SubmittedMsg:
		m.currentView = ViewDashboard
		cmd := m.submitEntry(msg)
		return m, cmd
	case entryform.CancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case todolist.TodoAddedMsg:
		var cmd tea.Cmd
		m.todos, cmd = m.todos.Update(msg)
		if msg.OK && m.settings.EnableNotifications {
			n := model.TaskAdded(msg.Todo, time.Now())
			expire := m.showToast(n.Title+": "+n.Body, false)
			return m, tea.Batch(cmd, expire)
		}
		return m, cmd

	case configview.ConfigDoneMsg:
		m.currentView = ViewDashboard
		return m, nil
	case configview.SettingsSavedMsg:
		var cmd tea.Cmd
		m.configView, cmd = m.configView.Update(msg)
		applied := m.applySettings(msg.Settings)
		return m, tea.Batch(cmd, applied)

	case themeToggledMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			cmd = m.showToast(fmt.Sprintf("Theme not saved: %v", msg.err), true)
		} else {
			cmd = m.applySettings(msg.settings)
		}
		return m, cmd

	case command.CommandMsg:
		m.currentView = ViewDashboard
		cmd := m.executeCommand(msg)
		return m, cmd
	case command.ErrorMsg:
		m.currentView = ViewDashboard
		cmd := m.showToast(msg.Err.Error(), true)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.broadcast(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.currentView = m.previousView
		}
		return m, nil

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil
		}
		return m.updateActiveView(msg)

	case ViewConfig, ViewEntry:
		return m.updateActiveView(msg)
	}

	// A pending delete confirmation owns the keyboard.
	if m.focus == FocusProjects && m.projects.Confirming() {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		m.helpView.SetJobs(m.ctx.Scheduler.Statuses())
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Settings):
		m.previousView = m.currentView
		m.currentView = ViewConfig
		return m, nil

	case key.Matches(msg, m.keys.NextPanel):
		m.focus = (m.focus + 1) % focusCount
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevPanel):
		m.focus = (m.focus + focusCount - 1) % focusCount
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		return m, m.toggleTheme()

	case key.Matches(msg, m.keys.RefreshAll):
		cmd := m.refreshAll()
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refreshFocused()
		return m, cmd

	case key.Matches(msg, m.keys.SpeedTest):
		cmd := m.network.Start()
		return m, cmd

	case key.Matches(msg, m.keys.City):
		cmd := m.openEntry(entryform.KindCity, m.weatherCity())
		return m, cmd
	}

	return m.updateFocused(msg)
}

// updateFocused sends a key to the focused list panel.
func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusTodos:
		m.todos, cmd = m.todos.Update(msg)
	case FocusNotes:
		m.notes, cmd = m.notes.Update(msg)
	case FocusProjects:
		m.projects, cmd = m.projects.Update(msg)
	}
	return m, cmd
}

// updateActiveView dispatches the message to the currently active overlay.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewConfig:
		m.configView, cmd = m.configView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewEntry:
		m.entryView, cmd = m.entryView.Update(msg)
	}

	return m, cmd
}

// broadcast hands a non-key message to every widget. Each widget ignores
// message types it does not own.
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 10)
	var cmd tea.Cmd

	m.todos, cmd = m.todos.Update(msg)
	cmds = append(cmds, cmd)
	m.notes, cmd = m.notes.Update(msg)
	cmds = append(cmds, cmd)
	m.projects, cmd = m.projects.Update(msg)
	cmds = append(cmds, cmd)
	m.weather, cmd = m.weather.Update(msg)
	cmds = append(cmds, cmd)
	m.quote, cmd = m.quote.Update(msg)
	cmds = append(cmds, cmd)
	m.metrics, cmd = m.metrics.Update(msg)
	cmds = append(cmds, cmd)
	m.network, cmd = m.network.Update(msg)
	cmds = append(cmds, cmd)
	m.battery, cmd = m.battery.Update(msg)
	cmds = append(cmds, cmd)

	next, cmd := m.updateActiveView(msg)
	cmds = append(cmds, cmd)

	return next, tea.Batch(cmds...)
}

func (m *Model) handleFire(msg schedule.FireMsg) tea.Cmd {
	switch msg.Job {
	case schedule.JobClock:
		m.clock.Tick(msg.At)
		return nil
	case schedule.JobWeather:
		return m.weather.Refresh(m.weatherCity())
	case schedule.JobMetrics:
		return m.metrics.Refresh()
	case schedule.JobSpeedTest:
		return m.network.Start()
	case schedule.JobBattery:
		return m.battery.Refresh()
	}
	return nil
}

func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayout(width, height)
	m.ready = true

	cols := m.layout.Columns(3)
	rows := m.layout.Rows(3)

	m.clock.SetSize(cols[0], rows[0])
	m.weather.SetSize(cols[1], rows[0])
	m.quote.SetSize(cols[2], rows[0])
	m.todos.SetSize(cols[0], rows[1])
	m.notes.SetSize(cols[1], rows[1])
	m.projects.SetSize(cols[2], rows[1])
	m.metrics.SetSize(cols[0], rows[2])
	m.network.SetSize(cols[1], rows[2])
	m.battery.SetSize(cols[2], rows[2])

	w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
	m.entryView.SetSize(w, h)
	m.configView.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
}

func (m *Model) applyFocus() {
	m.todos.Blur()
	m.notes.Blur()
	m.projects.Blur()
	m.weather.Blur()
	m.quote.Blur()
	m.metrics.Blur()
	m.network.Blur()
	m.battery.Blur()

	switch m.focus {
	case FocusTodos:
		m.todos.Focus()
	case FocusNotes:
		m.notes.Focus()
	case FocusProjects:
		m.projects.Focus()
	case FocusWeather:
		m.weather.Focus()
	case FocusQuote:
		m.quote.Focus()
	case FocusMetrics:
		m.metrics.Focus()
	case FocusNetwork:
		m.network.Focus()
	case FocusBattery:
		m.battery.Focus()
	}
}

// applySettings picks up saved settings on the UI goroutine.
func (m *Model) applySettings(s model.Settings) tea.Cmd {
	prevCity := m.settings.City
	m.settings = s
	theme.Apply(s.Theme)
	m.clock.ApplySettings(s)

	if m.cityOverride == "" && s.City != prevCity {
		return m.weather.Refresh(m.weatherCity())
	}
	return nil
}

func (m Model) weatherCity() string {
	if m.cityOverride != "" {
		return m.cityOverride
	}
	return m.settings.City
}

func (m *Model) refreshAll() tea.Cmd {
	return tea.Batch(
		m.weather.Refresh(m.weatherCity()),
		m.quote.Refresh(),
		m.metrics.Refresh(),
		m.battery.Refresh(),
		m.todos.Reload(),
	)
}

func (m *Model) refreshFocused() tea.Cmd {
	switch m.focus {
	case FocusWeather:
		return m.weather.Refresh(m.weatherCity())
	case FocusQuote:
		return m.quote.Refresh()
	case FocusMetrics:
		return m.metrics.Refresh()
	case FocusNetwork:
		return m.network.Start()
	case FocusBattery:
		return m.battery.Refresh()
	case FocusTodos:
		return m.todos.Reload()
	case FocusNotes:
		return m.notes.Init()
	case FocusProjects:
		return m.projects.Init()
	}
	return nil
}

func (m *Model) openEntry(kind entryform.Kind, initial string) tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewEntry
	return m.entryView.Start(kind, initial)
}

func (m *Model) submitEntry(msg entryform.SubmittedMsg) tea.Cmd {
	switch msg.Kind {
	case entryform.KindTodo:
		return m.todos.Add(msg.Text)
	case entryform.KindNote:
		return m.notes.Add(msg.Text)
	case entryform.KindProject:
		return m.projects.Add(msg.Text, msg.Description, msg.Status)
	case entryform.KindCity:
		m.cityOverride = msg.Text
		return m.weather.Refresh(m.weatherCity())
	}
	return nil
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	seq := m.toast.seq + 1
	m.toast = toast{text: text, isErr: isErr, seq: seq}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m Model) toggleTheme() tea.Cmd {
	mgr := m.ctx.Settings
	return func() tea.Msg {
		s, err := mgr.ToggleTheme(context.Background())
		return themeToggledMsg{settings: s, err: err}
	}
}

func (m Model) quit() tea.Cmd {
	m.ctx.Scheduler.Stop()
	return tea.Quit
}

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Dashboard", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())
	if m.toast.text != "" {
		style := theme.ToastStyle
		if m.toast.isErr {
			style = theme.ErrorStyle
		}
		statusBar = style.Width(m.layout.Width).Render(m.toast.text)
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewConfig:
		return m.configView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewEntry:
		return m.entryView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.clock.View(), m.weather.View(), m.quote.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, m.todos.View(), m.notes.View(), m.projects.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, m.metrics.View(), m.network.View(), m.battery.View()),
	)
}

func (m Model) headerStatus() string {
	pending := collection.PendingLabel(collection.Pending(m.todos.Items()))
	return fmt.Sprintf("%s pending · %s theme", pending, m.settings.Theme)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewConfig:
		return "e edit | x reset | esc back"
	case ViewEntry:
		return "enter submit | esc cancel"
	}

	switch m.focus {
	case FocusTodos:
		return "n add | x done | d delete | C clear done | tab next | ? help | q quit"
	case FocusNotes:
		return "n add | d delete | tab next | ? help | q quit"
	case FocusProjects:
		return "n add | s status | d delete | tab next | ? help | q quit"
	case FocusWeather:
		return "r refresh | w city | tab next | ? help | q quit"
	case FocusNetwork:
		return "t speed test | tab next | ? help | q quit"
	default:
		return "r refresh | R refresh all | c settings | T theme | : command | q quit"
	}
}
