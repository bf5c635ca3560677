package panels

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/refresh"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
)

// QuoteFetchedMsg carries a new quote.
type QuoteFetchedMsg struct {
	Quote model.Quote
}

// Quote shows the quote of the moment.
type Quote struct {
	quotes  *refresh.Quotes
	quote   model.Quote
	loading bool
	focused bool
	width   int
	height  int
}

func NewQuote(q *refresh.Quotes) Quote {
	return Quote{quotes: q}
}

// Refresh asks for a new quote.
func (m *Quote) Refresh() tea.Cmd {
	q := m.quotes
	m.loading = true
	return func() tea.Msg {
		return QuoteFetchedMsg{Quote: q.Next(context.Background())}
	}
}

func (m Quote) Update(msg tea.Msg) (Quote, tea.Cmd) {
	if msg, ok := msg.(QuoteFetchedMsg); ok {
		m.quote = msg.Quote
		m.loading = false
	}
	return m, nil
}

func (m *Quote) Focus() { m.focused = true }
func (m *Quote) Blur()  { m.focused = false }

func (m *Quote) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Quote) View() string {
	var body string
	switch {
	case m.quote.Text == "" && m.loading:
		body = theme.DimmedStyle.Render("Loading quote...")
	case m.quote.Text == "":
		body = theme.DimmedStyle.Render("Press 'r' for a quote.")
	default:
		wrap := lipgloss.NewStyle().Italic(true).Foreground(theme.Colors().Text).Width(max(m.width-4, 10))
		body = wrap.Render("“"+m.quote.Text+"”") + "\n" +
			theme.DimmedStyle.Render("- "+m.quote.Author)
	}
	return ui.Panel("Quote", body, m.width, m.height, m.focused)
}
