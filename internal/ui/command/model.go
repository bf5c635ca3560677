package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/theme"
)

// Name identifies a palette command.
type Name string

const (
	Refresh   Name = "refresh"
	Quote     Name = "quote"
	Weather   Name = "weather"
	SpeedTest Name = "speedtest"
	Theme     Name = "theme"
	Settings  Name = "settings"
	Todo      Name = "todo"
	Note      Name = "note"
	Project   Name = "project"
	Clear     Name = "clear"
	Quit      Name = "quit"
)

// Commands describes every palette command, in the order they are suggested.
var Commands = []struct {
	Name  Name
	Usage string
}{
	{Refresh, "refresh every widget"},
	{Quote, "fetch a new quote"},
	{Weather, "weather [city]: refresh weather, optionally for another city"},
	{SpeedTest, "run the network speed test"},
	{Theme, "toggle light/dark theme"},
	{Settings, "open settings"},
	{Todo, "todo <text>: add a task"},
	{Note, "note <text>: add a note"},
	{Project, "project <name>: add a project"},
	{Clear, "clear completed tasks"},
	{Quit, "quit the dashboard"},
}

// CommandMsg is emitted when the user executes a known command.
type CommandMsg struct {
	Name Name
	Arg  string
}

// ErrorMsg is emitted for input that is not a known command.
type ErrorMsg struct {
	Err error
}

// Parse splits input into a command name and its argument.
func Parse(input string) (CommandMsg, error) {
	input = strings.TrimSpace(input)
	name, arg, _ := strings.Cut(input, " ")
	name = strings.ToLower(name)

	for _, c := range Commands {
		if string(c.Name) == name {
			return CommandMsg{Name: c.Name, Arg: strings.TrimSpace(arg)}, nil
		}
	}
	return CommandMsg{}, fmt.Errorf("unknown command %q", name)
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(suggestions())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

func suggestions() []string {
	out := make([]string, len(Commands))
	for i, c := range Commands {
		out[i] = string(c.Name)
	}
	return out
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		value := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if value == "" {
			return m, nil
		}
		parsed, err := Parse(value)
		if err != nil {
			return m, func() tea.Msg { return ErrorMsg{Err: err} }
		}
		return m, func() tea.Msg { return parsed }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Colors().Text).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()
	hint := theme.HelpStyle.Render("tab completes | enter runs | esc closes")

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, "", hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
