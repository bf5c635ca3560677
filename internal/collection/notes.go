package collection

import (
	"context"
	"fmt"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

// Notes holds free-text notes, newest first.
type Notes struct {
	list *list[model.Note]
	opts Options
}

func NewNotes(s store.RecordStore, opts Options) *Notes {
	return &Notes{
		list: newList(s, store.KeyNotes, func(n model.Note) string { return n.ID }),
		opts: opts,
	}
}

func (c *Notes) List(ctx context.Context) ([]model.Note, error) {
	return c.list.list(ctx)
}

// Add stores a note at the front of the list.
func (c *Notes) Add(ctx context.Context, text string) (note model.Note, ok bool, err error) {
	text = clean(text)
	if text == "" {
		return model.Note{}, false, nil
	}

	id, err := c.opts.newID()
	if err != nil {
		return model.Note{}, false, err
	}
	note = model.Note{
		ID:        id,
		Text:      text,
		Timestamp: c.opts.now().Format(model.NoteTimestampLayout),
	}

	_, err = c.list.update(ctx, func(items []model.Note) ([]model.Note, bool) {
		return prepend(items, note), true
	})
	if err != nil {
		return model.Note{}, false, fmt.Errorf("adding note: %w", err)
	}
	return note, true, nil
}

func (c *Notes) Remove(ctx context.Context, id string) ([]model.Note, error) {
	return c.list.remove(ctx, id)
}
