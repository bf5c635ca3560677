package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dashboard/internal/ui/command"
	"github.com/nhle/dashboard/internal/ui/entryform"
)

// executeCommand runs a command palette entry.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	switch c.Name {
	case command.Refresh:
		return m.refreshAll()
	case command.Quote:
		return m.quote.Refresh()
	case command.Weather:
		if c.Arg != "" {
			m.cityOverride = c.Arg
		}
		return m.weather.Refresh(m.weatherCity())
	case command.SpeedTest:
		return m.network.Start()
	case command.Theme:
		return m.toggleTheme()
	case command.Settings:
		m.previousView = ViewDashboard
		m.currentView = ViewConfig
		return nil
	case command.Todo:
		if c.Arg == "" {
			return m.openEntry(entryform.KindTodo, "")
		}
		return m.todos.Add(c.Arg)
	case command.Note:
		if c.Arg == "" {
			return m.openEntry(entryform.KindNote, "")
		}
		return m.notes.Add(c.Arg)
	case command.Project:
		if c.Arg == "" {
			return m.openEntry(entryform.KindProject, "")
		}
		return m.projects.Add(c.Arg, "", "")
	case command.Clear:
		return m.todos.ClearCompleted()
	case command.Quit:
		return m.quit()
	}
	return nil
}
