package collection

import (
	"context"
	"fmt"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

// Todos is the to-do list.
type Todos struct {
	list *list[model.Todo]
	opts Options
}

// NewTodos returns the to-do collection stored in s.
func NewTodos(s store.RecordStore, opts Options) *Todos {
	return &Todos{
		list: newList(s, store.KeyTodos, func(t model.Todo) string { return t.ID }),
		opts: opts,
	}
}

// List returns the todos in insertion order.
func (c *Todos) List(ctx context.Context) ([]model.Todo, error) {
	return c.list.list(ctx)
}

// Add appends a todo. Blank text is ignored and reported with ok=false.
func (c *Todos) Add(ctx context.Context, text string) (todo model.Todo, ok bool, err error) {
	text = clean(text)
	if text == "" {
		return model.Todo{}, false, nil
	}

	id, err := c.opts.newID()
	if err != nil {
		return model.Todo{}, false, err
	}
	todo = model.Todo{ID: id, Text: text, CreatedAt: c.opts.now()}

	_, err = c.list.update(ctx, func(items []model.Todo) ([]model.Todo, bool) {
		return append(items, todo), true
	})
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("adding todo: %w", err)
	}
	return todo, true, nil
}

// Remove deletes the todo with id.
func (c *Todos) Remove(ctx context.Context, id string) ([]model.Todo, error) {
	return c.list.remove(ctx, id)
}

// Toggle flips the completed flag of the todo with id.
func (c *Todos) Toggle(ctx context.Context, id string) ([]model.Todo, error) {
	return c.list.update(ctx, func(items []model.Todo) ([]model.Todo, bool) {
		for i := range items {
			if items[i].ID == id {
				items[i].Completed = !items[i].Completed
				return items, true
			}
		}
		return items, false
	})
}

// ClearCompleted removes every completed todo in a single write.
func (c *Todos) ClearCompleted(ctx context.Context) ([]model.Todo, error) {
	return c.list.update(ctx, func(items []model.Todo) ([]model.Todo, bool) {
		out := make([]model.Todo, 0, len(items))
		for _, t := range items {
			if !t.Completed {
				out = append(out, t)
			}
		}
		return out, len(out) != len(items)
	})
}

// Pending counts the todos not yet completed.
func Pending(todos []model.Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// PendingLabel renders a pending count as "1 task" or "N tasks".
func PendingLabel(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
