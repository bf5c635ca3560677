package todolist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dashboard/internal/collection"
	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
)

// AddRequestMsg asks the parent to open the entry form for a new todo.
type AddRequestMsg struct{}

// TodoAddedMsg reports the outcome of Add. OK is false when the text was
// blank and nothing was stored.
type TodoAddedMsg struct {
	Todo model.Todo
	OK   bool
	Err  error
}

type todosLoadedMsg struct {
	todos []model.Todo
	err   error
}

// Model is the to-do panel.
type Model struct {
	todos       *collection.Todos
	keys        *keys.KeyMap
	items       []model.Todo
	selectedIdx int
	statusMsg   string
	focused     bool
	width       int
	height      int
}

// New creates the to-do panel.
func New(c *collection.Todos, k *keys.KeyMap, width, height int) Model {
	return Model{
		todos:  c,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init loads todos from the store.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Add stores a new todo with text.
func (m Model) Add(text string) tea.Cmd {
	c := m.todos
	return func() tea.Msg {
		todo, ok, err := c.Add(context.Background(), text)
		return TodoAddedMsg{Todo: todo, OK: ok, Err: err}
	}
}

// ClearCompleted removes every completed todo.
func (m Model) ClearCompleted() tea.Cmd {
	return m.mutate(func(ctx context.Context, c *collection.Todos, _ string) ([]model.Todo, error) {
		return c.ClearCompleted(ctx)
	})
}

// Reload re-reads todos from the store.
func (m Model) Reload() tea.Cmd {
	return m.load()
}

// Items returns the todos currently shown.
func (m Model) Items() []model.Todo {
	return m.items
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.setItems(msg.todos)
		return m, nil

	case TodoAddedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
			return m, nil
		}
		m.statusMsg = ""
		if !msg.OK {
			return m, nil
		}
		return m, m.load()

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
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

	case key.Matches(msg, m.keys.Toggle):
		if len(m.items) == 0 {
			return m, nil
		}
		return m, m.mutate(func(ctx context.Context, c *collection.Todos, id string) ([]model.Todo, error) {
			return c.Toggle(ctx, id)
		})

	case key.Matches(msg, m.keys.Delete):
		if len(m.items) == 0 {
			return m, nil
		}
		return m, m.mutate(func(ctx context.Context, c *collection.Todos, id string) ([]model.Todo, error) {
			return c.Remove(ctx, id)
		})

	case key.Matches(msg, m.keys.ClearCompleted):
		return m, m.ClearCompleted()
	}
	return m, nil
}

// View renders the panel.
func (m Model) View() string {
	title := fmt.Sprintf("To-Do (%s)", collection.PendingLabel(collection.Pending(m.items)))
	return ui.Panel(title, m.body(), m.width, m.height, m.focused)
}

func (m Model) body() string {
	var b strings.Builder

	if len(m.items) == 0 {
		b.WriteString(theme.DimmedStyle.Render("No tasks yet. Press 'n' to add one."))
	}

	start, end := ui.VisibleRange(len(m.items), m.selectedIdx, ui.PanelRows(m.height)-1)
	for i := start; i < end; i++ {
		t := m.items[i]
		check := "[ ]"
		style := theme.ListItemStyle
		if t.Completed {
			check = "[x]"
			style = theme.CompletedStyle
		}
		line := fmt.Sprintf("%s %s", check, t.Text)
		if m.focused && i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(style.Render(line))
		}
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.statusMsg))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Focus marks the panel as receiving keys.
func (m *Model) Focus() { m.focused = true }

// Blur stops the panel from receiving keys.
func (m *Model) Blur() { m.focused = false }

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) setItems(todos []model.Todo) {
	m.items = todos
	if m.selectedIdx >= len(m.items) {
		m.selectedIdx = max(len(m.items)-1, 0)
	}
}

func (m Model) load() tea.Cmd {
	c := m.todos
	return func() tea.Msg {
		todos, err := c.List(context.Background())
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (m Model) mutate(fn func(context.Context, *collection.Todos, string) ([]model.Todo, error)) tea.Cmd {
	c := m.todos
	id := ""
	if m.selectedIdx < len(m.items) {
		id = m.items[m.selectedIdx].ID
	}
	return func() tea.Msg {
		todos, err := fn(context.Background(), c, id)
		return todosLoadedMsg{todos: todos, err: err}
	}
}
