package todolist

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

func newTestModel(t *testing.T) (Model, *collection.Todos) {
	t.Helper()
	c := collection.NewTodos(testutil.NewTestStore(t), collection.Options{})
	m := New(c, keys.DefaultKeyMap(), 60, 20)
	m.Focus()
	return m, c
}

// run executes cmd and feeds its message back into m.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEmptyPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)
	m = run(t, m, m.Init())

	assert.Contains(t, m.View(), "No tasks yet")
	assert.Contains(t, m.View(), "0 tasks")
}

func TestAddReloads(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.Add("Write report")
	msg := cmd().(TodoAddedMsg)
	require.True(t, msg.OK)
	assert.Equal(t, "Write report", msg.Todo.Text)

	m, reload := m.Update(msg)
	m = run(t, m, reload)
	require.Len(t, m.Items(), 1)
	assert.Contains(t, m.View(), "1 task")
}

func TestAddBlankIsNoop(t *testing.T) {
	m, _ := newTestModel(t)

	msg := m.Add("   ")().(TodoAddedMsg)
	assert.False(t, msg.OK)

	_, cmd := m.Update(msg)
	assert.Nil(t, cmd)
}

func TestToggleAndClearCompleted(t *testing.T) {
	m, c := newTestModel(t)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		_, _, err := c.Add(ctx, text)
		require.NoError(t, err)
	}
	m = run(t, m, m.Init())

	_, cmd := m.Update(keyMsg("x"))
	m = run(t, m, cmd)
	assert.True(t, m.Items()[0].Completed)

	_, cmd = m.Update(keyMsg("C"))
	m = run(t, m, cmd)
	require.Len(t, m.Items(), 2)
	assert.Equal(t, "b", m.Items()[0].Text)
}

func TestDeleteSelected(t *testing.T) {
	m, c := newTestModel(t)
	ctx := context.Background()
	for _, text := range []string{"a", "b"} {
		_, _, err := c.Add(ctx, text)
		require.NoError(t, err)
	}
	m = run(t, m, m.Init())

	m, _ = m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("d"))
	m = run(t, m, cmd)

	require.Len(t, m.Items(), 1)
	assert.Equal(t, "a", m.Items()[0].Text)
	assert.Equal(t, 0, m.selectedIdx)
}

func TestAddKeyRequestsForm(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("n"))
	require.NotNil(t, cmd)
	assert.IsType(t, AddRequestMsg{}, cmd())
}

func TestBlurredIgnoresKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m.Blur()

	_, cmd := m.Update(keyMsg("n"))
	assert.Nil(t, cmd)
}
