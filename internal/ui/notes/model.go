package notes

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

// AddRequestMsg asks the parent to open the entry form for a new note.
type AddRequestMsg struct{}

// NoteAddedMsg reports the outcome of Add.
type NoteAddedMsg struct {
	Note model.Note
	OK   bool
	Err  error
}

type notesLoadedMsg struct {
	notes []model.Note
	err   error
}

// Model is the notes panel. Each note takes two lines: its text and its
// timestamp.
type Model struct {
	notes       *collection.Notes
	keys        *keys.KeyMap
	items       []model.Note
	selectedIdx int
	statusMsg   string
	focused     bool
	width       int
	height      int
}

func New(c *collection.Notes, k *keys.KeyMap, width, height int) Model {
	return Model{notes: c, keys: k, width: width, height: height}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

// Add stores a new note with text.
func (m Model) Add(text string) tea.Cmd {
	c := m.notes
	return func() tea.Msg {
		note, ok, err := c.Add(context.Background(), text)
		return NoteAddedMsg{Note: note, OK: ok, Err: err}
	}
}

func (m Model) Items() []model.Note {
	return m.items
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.statusMsg = ""
		m.items = msg.notes
		if m.selectedIdx >= len(m.items) {
			m.selectedIdx = max(len(m.items)-1, 0)
		}
		return m, nil

	case NoteAddedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
			return m, nil
		}
		if !msg.OK {
			return m, nil
		}
		m.selectedIdx = 0
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
	case key.Matches(msg, m.keys.Up):
		if len(m.items) > 0 {
			m.selectedIdx = (m.selectedIdx - 1 + len(m.items)) % len(m.items)
		}
	case key.Matches(msg, m.keys.Add):
		return m, func() tea.Msg { return AddRequestMsg{} }
	case key.Matches(msg, m.keys.Delete):
		if len(m.items) == 0 {
			return m, nil
		}
		return m, m.remove(m.items[m.selectedIdx].ID)
	}
	return m, nil
}

func (m Model) View() string {
	return ui.Panel("Notes", m.body(), m.width, m.height, m.focused)
}

func (m Model) body() string {
	if len(m.items) == 0 {
		return theme.DimmedStyle.Render("No notes yet. Press 'n' to write one.")
	}

	var b strings.Builder
	start, end := ui.VisibleRange(len(m.items), m.selectedIdx, ui.PanelRows(m.height)/2)
	for i := start; i < end; i++ {
		n := m.items[i]
		text := firstLine(n.Text)
		if m.focused && i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(text))
		} else {
			b.WriteString(theme.ListItemStyle.Render(text))
		}
		b.WriteString("\n")
		b.WriteString(theme.DimmedStyle.Render("  " + n.Timestamp))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString(theme.ErrorStyle.Render(m.statusMsg))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) Focus() { m.focused = true }
func (m *Model) Blur()  { m.focused = false }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) load() tea.Cmd {
	c := m.notes
	return func() tea.Msg {
		notes, err := c.List(context.Background())
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	c := m.notes
	return func() tea.Msg {
		notes, err := c.Remove(context.Background(), id)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

// firstLine shows multi-line notes as their first line with an ellipsis.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
