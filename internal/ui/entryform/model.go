package entryform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/theme"
)

// Kind selects what the form collects.
type Kind int

const (
	KindTodo Kind = iota
	KindNote
	KindProject
	KindCity
)

// SubmittedMsg is dispatched when the form is completed.
type SubmittedMsg struct {
	Kind        Kind
	Text        string
	Description string
	// Status is set for projects only.
	Status model.ProjectStatus
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text        string
	description string
	status      model.ProjectStatus
}

// Model is a small huh form used to add todos, notes and projects and to
// enter a weather city.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	kind   Kind
	width  int
	height int
}

// New creates an idle entry form.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start resets the form for kind, prefilled with initial.
func (m *Model) Start(kind Kind, initial string) tea.Cmd {
	m.kind = kind
	m.fb.text = initial
	m.fb.description = ""
	m.fb.status = ""
	if kind == KindProject {
		m.fb.status = model.ProjectPlanning
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Kind returns the kind of the form in progress.
func (m Model) Kind() Kind {
	return m.kind
}

// Update handles messages for the entry form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		submitted := SubmittedMsg{
			Kind:        m.kind,
			Text:        strings.TrimSpace(m.fb.text),
			Description: strings.TrimSpace(m.fb.description),
			Status:      m.fb.status,
		}
		m.form = nil
		return m, func() tea.Msg { return submitted }
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Colors().Text).
		MarginBottom(1)

	content := titleStyle.Render(m.title()) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) title() string {
	switch m.kind {
	case KindNote:
		return "New Note"
	case KindProject:
		return "New Project"
	case KindCity:
		return "Weather Location"
	default:
		return "New Task"
	}
}

func (m *Model) buildForm() *huh.Form {
	var fields []huh.Field

	switch m.kind {
	case KindNote:
		fields = append(fields,
			huh.NewText().
				Title("Note").
				Placeholder("Write a note...").
				Value(&m.fb.text).
				Validate(validateRequired("Note")),
		)
	case KindProject:
		fields = append(fields,
			huh.NewInput().
				Title("Name").
				Placeholder("Project name").
				Value(&m.fb.text).
				Validate(validateRequired("Name")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional description").
				Value(&m.fb.description),
			huh.NewSelect[model.ProjectStatus]().
				Title("Status").
				Options(statusOptions()...).
				Value(&m.fb.status),
		)
	case KindCity:
		fields = append(fields,
			huh.NewInput().
				Title("City").
				Description("Leave empty to use the city from settings.").
				Placeholder("e.g. Paris").
				Value(&m.fb.text),
		)
	default:
		fields = append(fields,
			huh.NewInput().
				Title("Task").
				Placeholder("What needs to be done?").
				Value(&m.fb.text).
				Validate(validateRequired("Task")),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
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

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func statusOptions() []huh.Option[model.ProjectStatus] {
	opts := make([]huh.Option[model.ProjectStatus], 0, len(model.ProjectStatuses))
	for _, s := range model.ProjectStatuses {
		opts = append(opts, huh.NewOption(s.Label(), s))
	}
	return opts
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
