package projectmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/collection"
	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
)

// AddRequestMsg asks the parent to open the entry form for a new project.
type AddRequestMsg struct{}

// ProjectAddedMsg reports the outcome of Add.
type ProjectAddedMsg struct {
	Project model.Project
	OK      bool
	Err     error
}

type projectMode int

const (
	modeList projectMode = iota
	modeConfirmDelete
)

type formBindings struct {
	confirm bool
}

type projectsLoadedMsg struct {
	projects []model.Project
	err      error
}

// Model is the projects panel.
type Model struct {
	mode        projectMode
	projects    *collection.Projects
	keys        *keys.KeyMap
	items       []model.Project
	selectedIdx int
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	focused     bool
	width       int
	height      int
}

// New creates a new project panel.
func New(c *collection.Projects, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:     modeList,
		projects: c,
		keys:     k,
		fb:       &formBindings{},
		width:    width, height: height,
	}
}

// Init loads projects from the store.
func (m Model) Init() tea.Cmd {
	return m.loadProjects()
}

// Add stores a new project.
func (m Model) Add(name, description string, status model.ProjectStatus) tea.Cmd {
	c := m.projects
	return func() tea.Msg {
		p, ok, err := c.Add(context.Background(), name, description, status)
		return ProjectAddedMsg{Project: p, OK: ok, Err: err}
	}
}

func (m Model) Items() []model.Project {
	return m.items
}

// Confirming reports whether the delete confirmation owns the keyboard.
func (m Model) Confirming() bool {
	return m.mode == modeConfirmDelete
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMsg = ""
			m.items = msg.projects
		}
		if m.selectedIdx >= len(m.items) {
			m.selectedIdx = max(len(m.items)-1, 0)
		}
		m.mode = modeList
		return m, nil

	case ProjectAddedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
			return m, nil
		}
		if !msg.OK {
			return m, nil
		}
		m.selectedIdx = 0
		return m, m.loadProjects()

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.mode == modeConfirmDelete {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.mode == modeConfirmDelete {
		return m.updateConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.items) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.items)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.items) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.items) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		return m, func() tea.Msg { return AddRequestMsg{} }

	case key.Matches(msg, m.keys.CycleStatus):
		if len(m.items) == 0 {
			return m, nil
		}
		p := m.items[m.selectedIdx]
		return m, m.setStatus(p.ID, p.Status.Next())

	case key.Matches(msg, m.keys.Delete):
		if len(m.items) == 0 {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	if m.selectedIdx < len(m.items) {
		name = m.items[m.selectedIdx].Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete project %q?", name)).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		m.mode = modeList
		if m.fb.confirm && m.selectedIdx < len(m.items) {
			return m, m.deleteProject(m.items[m.selectedIdx].ID)
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the project panel.
func (m Model) View() string {
	body := m.viewList()
	if m.mode == modeConfirmDelete && m.confirmForm != nil {
		body = m.confirmForm.View()
	}
	return ui.Panel("Projects", body, m.width, m.height, m.focused)
}

func (m Model) viewList() string {
	if len(m.items) == 0 {
		return theme.DimmedStyle.Render("No projects yet. Press 'n' to create one.")
	}

	var b strings.Builder
	start, end := ui.VisibleRange(len(m.items), m.selectedIdx, ui.PanelRows(m.height)/2)
	for i := start; i < end; i++ {
		p := m.items[i]

		name := p.Name
		if m.focused && i == m.selectedIdx {
			name = theme.SelectedItemStyle.Render(name)
		} else {
			name = theme.ListItemStyle.Render(name)
		}
		status := theme.ProjectStatusStyle(p.Status).Render(p.Status.Label())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, name, " ", status))
		b.WriteString("\n")

		meta := "  Created " + p.Created
		if p.Description != "" {
			meta = "  " + p.Description + " · " + p.Created
		}
		b.WriteString(theme.DimmedStyle.Render(meta))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString(theme.ErrorStyle.Render(m.statusMsg))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) Focus() { m.focused = true }
func (m *Model) Blur()  { m.focused = false }

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) loadProjects() tea.Cmd {
	c := m.projects
	return func() tea.Msg {
		projects, err := c.List(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m Model) setStatus(id string, status model.ProjectStatus) tea.Cmd {
	c := m.projects
	return func() tea.Msg {
		projects, err := c.SetStatus(context.Background(), id, status)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m Model) deleteProject(id string) tea.Cmd {
	c := m.projects
	return func() tea.Msg {
		projects, err := c.Remove(context.Background(), id)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}
