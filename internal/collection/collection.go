package collection

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/dashboard/internal/store"
)

// list is a JSON array persisted under a single record key. Every mutation
// re-reads the stored array, applies a change and writes the whole array back
// while holding mu.
type list[T any] struct {
	store store.RecordStore
	key   string
	idOf  func(T) string

	mu sync.Mutex
}

func newList[T any](s store.RecordStore, key string, idOf func(T) string) *list[T] {
	return &list[T]{store: s, key: key, idOf: idOf}
}

// load returns the stored items. A missing or unreadable record is an empty
// list.
func (l *list[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	ok, err := store.LoadInto(ctx, l.store, l.key, &items)
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		return []T{}, nil
	}
	return items, nil
}

func (l *list[T]) list(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// update applies fn to the stored items. The result is persisted only when fn
// reports a change.
func (l *list[T]) update(ctx context.Context, fn func([]T) ([]T, bool)) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	next, changed := fn(items)
	if !changed {
		return items, nil
	}

	if err := l.store.Save(ctx, l.key, next); err != nil {
		return items, fmt.Errorf("saving %s: %w", l.key, err)
	}
	return next, nil
}

func (l *list[T]) remove(ctx context.Context, id string) ([]T, error) {
	return l.update(ctx, func(items []T) ([]T, bool) {
		out := make([]T, 0, len(items))
		for _, it := range items {
			if l.idOf(it) != id {
				out = append(out, it)
			}
		}
		return out, len(out) != len(items)
	})
}

// Options overrides the clock and id generator. Zero values use the real
// ones.
type Options struct {
	Now   func() time.Time
	NewID func() (string, error)
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) newID() (string, error) {
	if o.NewID != nil {
		return o.NewID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return id.String(), nil
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func clean(s string) string {
	return strings.TrimSpace(s)
}
