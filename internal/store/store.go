package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record keys used by the dashboard.
const (
	KeySettings = "dashboardSettings"
	KeyTodos    = "dashboardTodos"
	KeyNotes    = "dashboard-notes"
	KeyProjects = "dashboard-projects"
)

// RecordStore persists whole JSON documents under string keys. A Save
// overwrites the previous value for its key; there are no partial writes and
// no transactions spanning several keys.
type RecordStore interface {
	// Load returns the raw JSON stored under key. ok is false when the key
	// was never written or its value is not valid JSON.
	Load(ctx context.Context, key string) (raw json.RawMessage, ok bool, err error)

	// Save marshals value and stores it under key.
	Save(ctx context.Context, key string, value any) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// LoadInto decodes the value stored under key into dst. It reports false,
// leaving dst untouched, when the key is absent or the stored JSON does not
// decode into dst's type.
func LoadInto(ctx context.Context, s RecordStore, key string, dst any) (bool, error) {
	raw, ok, err := s.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, nil
	}
	return true, nil
}
