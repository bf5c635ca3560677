package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/theme"
)

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// Columns splits the content width into n equal columns, giving any
// remainder to the last one.
func (l Layout) Columns(n int) []int {
	if n <= 0 {
		return nil
	}
	base := l.Width / n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
	}
	widths[n-1] += l.Width - base*n
	return widths
}

// Rows splits the content height into n rows, giving any remainder to the
// last one.
func (l Layout) Rows(n int) []int {
	if n <= 0 {
		return nil
	}
	h := l.ContentHeight()
	base := h / n
	heights := make([]int, n)
	for i := range heights {
		heights[i] = base
	}
	heights[n-1] += h - base*n
	return heights
}

// RenderHeader renders the top header bar with a title and a right-aligned
// status.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.StatusBarStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// Panel frames body with a title. width and height are the outer size
// including the border.
func Panel(title, body string, width, height int, focused bool) string {
	style := theme.PanelStyle
	if focused {
		style = theme.FocusedPanelStyle
	}

	innerW := width - style.GetHorizontalFrameSize()
	innerH := height - style.GetVerticalFrameSize()
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	content := theme.PanelTitleStyle.Render(title) + "\n" + clipLines(body, innerH-1)
	return style.Width(innerW).Height(innerH).MaxHeight(height).Render(content)
}

// clipLines keeps at most n lines of s.
func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// VisibleRange returns the [start, end) window of n list rows that fits in
// rows lines while keeping selected in view.
func VisibleRange(n, selected, rows int) (int, int) {
	if rows <= 0 || n <= 0 {
		return 0, 0
	}
	if n <= rows {
		return 0, n
	}
	start := selected - rows + 1
	if start < 0 {
		start = 0
	}
	if start > n-rows {
		start = n - rows
	}
	return start, start + rows
}

// PanelRows is the number of body lines a Panel of the given outer height
// can show below its title.
func PanelRows(height int) int {
	rows := height - theme.PanelStyle.GetVerticalFrameSize() - 1
	if rows < 0 {
		return 0
	}
	return rows
}
