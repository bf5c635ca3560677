package entryform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/dashboard/internal/model"
)

func TestValidateRequired(t *testing.T) {
	check := validateRequired("Task")
	assert.EqualError(t, check("   "), "Task is required")
	assert.NoError(t, check("buy milk"))
}

func TestStartSetsKindAndTitle(t *testing.T) {
	m := New(80, 24)

	m.Start(KindProject, "")
	assert.Equal(t, KindProject, m.Kind())
	assert.Equal(t, "New Project", m.title())
	assert.NotEmpty(t, m.View())

	m.Start(KindCity, "Paris")
	assert.Equal(t, "Weather Location", m.title())
	assert.Equal(t, "Paris", m.fb.text)
}

func TestProjectFormDefaultsToPlanning(t *testing.T) {
	m := New(80, 24)

	m.Start(KindProject, "")
	assert.Equal(t, model.ProjectPlanning, m.fb.status)

	m.fb.status = model.ProjectOnHold
	m.Start(KindTodo, "")
	assert.Empty(t, m.fb.status)

	opts := statusOptions()
	assert.Len(t, opts, len(model.ProjectStatuses))
	assert.Equal(t, model.ProjectInProgress, opts[1].Value)
	assert.Equal(t, "In Progress", opts[1].Key)
}

func TestFormSizeClamped(t *testing.T) {
	m := New(10, 5)
	assert.Equal(t, 40, m.formWidth())
	assert.Equal(t, 10, m.formHeight())

	m.SetSize(300, 50)
	assert.Equal(t, 100, m.formWidth())
	assert.Equal(t, 46, m.formHeight())
}
