package projectmgr

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/collection"
	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/tests/testutil"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *collection.Projects) {
	t.Helper()
	c := collection.NewProjects(testutil.NewTestStore(t), collection.Options{})
	m := New(c, keys.DefaultKeyMap(), 70, 20)
	m.Focus()
	m, _ = m.Update(m.Init()())
	return m, c
}

func addProject(t *testing.T, m Model, name, desc string) Model {
	t.Helper()
	added := m.Add(name, desc, "")().(ProjectAddedMsg)
	require.NoError(t, added.Err)
	require.True(t, added.OK)
	m, cmd := m.Update(added)
	m, _ = m.Update(cmd())
	return m
}

func TestEmptyPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), "No projects yet")
}

func TestAddShowsPlanning(t *testing.T) {
	m, _ := newTestModel(t)
	m = addProject(t, m, "Website", "Redesign")

	require.Len(t, m.Items(), 1)
	assert.Equal(t, model.ProjectPlanning, m.Items()[0].Status)
	assert.Contains(t, m.View(), "Planning")
	assert.Contains(t, m.View(), "Redesign")
}

func TestCycleStatusPersists(t *testing.T) {
	m, c := newTestModel(t)
	m = addProject(t, m, "Website", "")

	_, cmd := m.Update(keyMsg("s"))
	m, _ = m.Update(cmd())
	assert.Equal(t, model.ProjectInProgress, m.Items()[0].Status)

	stored, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ProjectInProgress, stored[0].Status)
	assert.Equal(t, "Website", stored[0].Name)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, _ := newTestModel(t)
	m = addProject(t, m, "Website", "")

	m, cmd := m.Update(keyMsg("d"))
	assert.NotNil(t, cmd)
	assert.True(t, m.Confirming())
	assert.Contains(t, m.View(), `Delete project "Website"?`)

	m, _ = m.Update(m.deleteProject(m.Items()[0].ID)())
	assert.False(t, m.Confirming())
	assert.Empty(t, m.Items())
}
