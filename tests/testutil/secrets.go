package testutil

import (
	"errors"
	"sync"

	"github.com/nhle/dashboard/internal/credential"
)

// MemorySecrets is an in-memory credential.Store for tests.
type MemorySecrets struct {
	mu     sync.Mutex
	values map[string]string

	// FailSet makes every Set call return an error.
	FailSet bool
}

// NewMemorySecrets returns an empty MemorySecrets.
func NewMemorySecrets() *MemorySecrets {
	return &MemorySecrets{values: make(map[string]string)}
}

func (m *MemorySecrets) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", credential.ErrNotFound
	}
	return v, nil
}

func (m *MemorySecrets) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet {
		return errors.New("secret store unavailable")
	}
	m.values[key] = value
	return nil
}

func (m *MemorySecrets) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
