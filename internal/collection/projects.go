package collection

import (
	"context"
	"fmt"

	"github.com/nhle/dashboard/internal/failure"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

// ErrInvalidStatus is returned by Add and SetStatus for a status outside
// model.ProjectStatuses.
var ErrInvalidStatus = failure.BadRequestFromString("invalid project status")

// Projects tracks projects and their lifecycle status, newest first.
type Projects struct {
	list *list[model.Project]
	opts Options
}

func NewProjects(s store.RecordStore, opts Options) *Projects {
	return &Projects{
		list: newList(s, store.KeyProjects, func(p model.Project) string { return p.ID }),
		opts: opts,
	}
}

func (c *Projects) List(ctx context.Context) ([]model.Project, error) {
	return c.list.list(ctx)
}

// Add creates a project with status, or in the planning stage when status
// is empty. A blank name is ignored.
func (c *Projects) Add(ctx context.Context, name, description string, status model.ProjectStatus) (project model.Project, ok bool, err error) {
	name = clean(name)
	if name == "" {
		return model.Project{}, false, nil
	}
	if status == "" {
		status = model.ProjectPlanning
	}
	if !status.Valid() {
		return model.Project{}, false, ErrInvalidStatus
	}

	id, err := c.opts.newID()
	if err != nil {
		return model.Project{}, false, err
	}
	project = model.Project{
		ID:          id,
		Name:        name,
		Description: clean(description),
		Status:      status,
		Created:     c.opts.now().Format(model.ProjectDateLayout),
	}

	_, err = c.list.update(ctx, func(items []model.Project) ([]model.Project, bool) {
		return prepend(items, project), true
	})
	if err != nil {
		return model.Project{}, false, fmt.Errorf("adding project: %w", err)
	}
	return project, true, nil
}

func (c *Projects) Remove(ctx context.Context, id string) ([]model.Project, error) {
	return c.list.remove(ctx, id)
}

// SetStatus changes the status of the project with id and nothing else.
func (c *Projects) SetStatus(ctx context.Context, id string, status model.ProjectStatus) ([]model.Project, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	return c.list.update(ctx, func(items []model.Project) ([]model.Project, bool) {
		for i := range items {
			if items[i].ID == id {
				if items[i].Status == status {
					return items, false
				}
				items[i].Status = status
				return items, true
			}
		}
		return items, false
	})
}
