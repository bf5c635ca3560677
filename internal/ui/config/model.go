package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/settings"
	"github.com/nhle/dashboard/internal/theme"
)

// ConfigMode represents the current state of the settings view.
type ConfigMode int

const (
	ModeSummary      ConfigMode = iota // Show current settings
	ModeForm                           // Edit form
	ModeSaving                         // Persisting
	ModeConfirmReset                   // Confirm restoring defaults
)

// ConfigDoneMsg signals the settings view should close and return to the
// dashboard.
type ConfigDoneMsg struct{}

// SettingsSavedMsg signals the settings were saved or reset.
type SettingsSavedMsg struct {
	Settings model.Settings
}

type settingsSavedInternalMsg struct {
	settings model.Settings
	reset    bool
	err      error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	userName            string
	theme               model.Theme
	refreshInterval     string
	showSeconds         bool
	enableNotifications bool
	city                string
	calendarID          string
	apiKey              string
	confirm             bool
}

// Model is the Bubble Tea model for the settings UI.
type Model struct {
	mode      ConfigMode
	manager   *settings.Manager
	form      *huh.Form
	confirm   *huh.Form
	fb        *formBindings
	spinner   spinner.Model
	statusMsg string

	keys          *keys.KeyMap
	width, height int
}

// New creates a new settings view model.
func New(mgr *settings.Manager, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		mode:    ModeSummary,
		manager: mgr,
		fb:      &formBindings{},
		keys:    k,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Mode returns the current view mode.
func (m Model) Mode() ConfigMode {
	return m.mode
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedInternalMsg:
		m.mode = ModeSummary
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving settings: %v", msg.err)
			return m, nil
		}
		m.statusMsg = "Settings saved"
		if msg.reset {
			m.statusMsg = "Settings reset to defaults"
		}
		saved := msg.settings
		return m, func() tea.Msg { return SettingsSavedMsg{Settings: saved} }

	case spinner.TickMsg:
		if m.mode == ModeSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeSummary:
		return m.handleSummaryKeys(msg)
	case ModeForm:
		return m.updateForm(msg)
	case ModeConfirmReset:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleSummaryKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.statusMsg = ""
		return m, func() tea.Msg { return ConfigDoneMsg{} }

	case msg.String() == "e", msg.String() == "enter":
		m.loadBindings(m.manager.Current())
		m.form = m.buildForm()
		m.mode = ModeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case msg.String() == "x":
		m.fb.confirm = false
		m.confirm = m.buildConfirmForm()
		m.mode = ModeConfirmReset
		return m, m.confirm.Init()
	}
	return m, nil
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeForm:
		return m.updateForm(msg)
	case ModeConfirmReset:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// --- Form ---

func (m *Model) loadBindings(s model.Settings) {
	m.fb.userName = s.UserName
	m.fb.theme = s.Theme
	m.fb.refreshInterval = strconv.Itoa(s.RefreshInterval)
	m.fb.showSeconds = s.ShowSeconds
	m.fb.enableNotifications = s.EnableNotifications
	m.fb.city = s.City
	m.fb.calendarID = s.GoogleCalendarID
	m.fb.apiKey = s.GoogleAPIKey
}

// bindingsToSettings converts the form values. refreshInterval has already
// passed validateInterval.
func (m Model) bindingsToSettings() model.Settings {
	interval, _ := strconv.Atoi(strings.TrimSpace(m.fb.refreshInterval))
	return model.Settings{
		UserName:            strings.TrimSpace(m.fb.userName),
		Theme:               m.fb.theme,
		RefreshInterval:     interval,
		ShowSeconds:         m.fb.showSeconds,
		EnableNotifications: m.fb.enableNotifications,
		City:                strings.TrimSpace(m.fb.city),
		GoogleCalendarID:    strings.TrimSpace(m.fb.calendarID),
		GoogleAPIKey:        strings.TrimSpace(m.fb.apiKey),
	}
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Description("Shown in the greeting").
				Placeholder(model.DefaultUserName).
				CharLimit(64).
				Value(&m.fb.userName),
			huh.NewSelect[model.Theme]().
				Title("Theme").
				Options(
					huh.NewOption("Light", model.ThemeLight),
					huh.NewOption("Dark", model.ThemeDark),
				).
				Value(&m.fb.theme),
			huh.NewInput().
				Title("Weather refresh (minutes)").
				Placeholder(strconv.Itoa(model.DefaultRefreshInterval)).
				Value(&m.fb.refreshInterval).
				Validate(validateInterval),
			huh.NewInput().
				Title("City").
				Description("Location for weather reports").
				Placeholder(model.DefaultCity).
				CharLimit(128).
				Value(&m.fb.city),
		).Title("General"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show seconds on the clock?").
				Value(&m.fb.showSeconds),
			huh.NewConfirm().
				Title("Enable notifications?").
				Description("Show a toast when a task is added").
				Value(&m.fb.enableNotifications),
		).Title("Display"),
		huh.NewGroup(
			huh.NewInput().
				Title("Google Calendar ID").
				Placeholder("primary").
				Value(&m.fb.calendarID),
			huh.NewInput().
				Title("Google API key").
				Description("Kept in the system keyring").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.apiKey),
		).Title("Calendar"),
	).WithWidth(m.formWidth())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.mode = ModeSaving
		return m, tea.Batch(
			m.spinner.Tick,
			m.saveSettings(m.bindingsToSettings()),
		)
	}
	if m.form.State == huh.StateAborted {
		m.mode = ModeSummary
		return m, nil
	}

	return m, cmd
}

func (m Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all settings to their defaults?").
				Description("The stored API key is removed as well.").
				Affirmative("Yes, reset").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirm == nil {
		return m, nil
	}

	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State == huh.StateCompleted {
		if m.fb.confirm {
			m.mode = ModeSaving
			return m, tea.Batch(m.spinner.Tick, m.resetSettings())
		}
		m.mode = ModeSummary
		return m, nil
	}
	if m.confirm.State == huh.StateAborted {
		m.mode = ModeSummary
		return m, nil
	}

	return m, cmd
}

// --- View ---

// View renders the settings UI based on the current mode.
func (m Model) View() string {
	switch m.mode {
	case ModeSummary:
		return m.viewSummary()
	case ModeForm:
		return m.viewForm(m.form)
	case ModeSaving:
		return m.viewSaving()
	case ModeConfirmReset:
		return m.viewForm(m.confirm)
	default:
		return ""
	}
}

func (m Model) viewSummary() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Colors().Text).
		MarginBottom(1)

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	s := m.manager.Current()
	apiKey := "not set"
	if s.GoogleAPIKey != "" {
		apiKey = "set"
	}
	rows := [][2]string{
		{"Name", s.UserName},
		{"Theme", string(s.Theme)},
		{"Weather refresh", fmt.Sprintf("every %d min", s.RefreshInterval)},
		{"City", s.City},
		{"Show seconds", yesNo(s.ShowSeconds)},
		{"Notifications", yesNo(s.EnableNotifications)},
		{"Calendar ID", s.GoogleCalendarID},
		{"API key", apiKey},
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.Colors().Muted).Width(18)
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(theme.ListItemStyle.Render(r[1]))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.NoticeStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("e edit | x reset to defaults | esc back"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(f.View())
}

func (m Model) viewSaving() string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(m.spinner.View() + " Saving settings...")
}

// --- Helpers ---

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) saveSettings(s model.Settings) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		err := mgr.Save(context.Background(), s)
		return settingsSavedInternalMsg{settings: s, err: err}
	}
}

func (m Model) resetSettings() tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		s, err := mgr.Reset(context.Background())
		return settingsSavedInternalMsg{settings: s, reset: true, err: err}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// --- Validators ---

func validateInterval(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("refresh interval must be a number")
	}
	if n < 1 || n > model.MaxRefreshInterval {
		return fmt.Errorf("refresh interval must be between 1 and %d", model.MaxRefreshInterval)
	}
	return nil
}
