package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/schedule"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui/command"
)

// Model is the help overlay view. Besides the key bindings it lists the
// palette commands and the refresh schedule.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	jobs   []schedule.JobStatus
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// SetJobs records the scheduler state shown at the bottom of the overlay.
func (m *Model) SetJobs(jobs []schedule.JobStatus) {
	m.jobs = jobs
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Colors().Text).
		MarginBottom(1)

	title := titleStyle.Render("Keyboard Shortcuts")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	sections := []string{title, helpText, "", titleStyle.Render("Commands"), m.commands()}
	if len(m.jobs) > 0 {
		sections = append(sections, "", titleStyle.Render("Schedule"), m.schedule())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

func (m Model) commands() string {
	var b strings.Builder
	nameStyle := lipgloss.NewStyle().Foreground(theme.Colors().Accent).Width(12)
	for _, c := range command.Commands {
		b.WriteString(nameStyle.Render(":" + string(c.Name)))
		b.WriteString(theme.DimmedStyle.Render(c.Usage))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) schedule() string {
	var b strings.Builder
	for _, j := range m.jobs {
		last := "never"
		if !j.LastFired.IsZero() {
			last = j.LastFired.Format("15:04:05")
		}
		b.WriteString(theme.DimmedStyle.Render(
			fmt.Sprintf("%-10s every %-8s last %s (%d runs)", j.Job, j.Interval, last, j.Fires),
		))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
