package notes

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/collection"
	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/tests/testutil"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNotesPanel(t *testing.T) {
	c := collection.NewNotes(testutil.NewTestStore(t), collection.Options{})
	m := New(c, keys.DefaultKeyMap(), 60, 20)
	m.Focus()

	m, _ = m.Update(m.Init()())
	assert.Contains(t, m.View(), "No notes yet")

	added := m.Add("first")().(NoteAddedMsg)
	require.True(t, added.OK)
	m, cmd := m.Update(added)
	m, _ = m.Update(cmd())

	added = m.Add("second\nmore detail")().(NoteAddedMsg)
	m, cmd = m.Update(added)
	m, _ = m.Update(cmd())

	require.Len(t, m.Items(), 2)
	assert.Equal(t, "second\nmore detail", m.Items()[0].Text)
	assert.Contains(t, m.View(), "second …")
	assert.Contains(t, m.View(), m.Items()[0].Timestamp)

	_, cmd = m.Update(keyMsg("d"))
	m, _ = m.Update(cmd())
	require.Len(t, m.Items(), 1)
	assert.Equal(t, "first", m.Items()[0].Text)

	stored, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", firstLine("one"))
	assert.Equal(t, "one …", firstLine("one\ntwo"))
}
