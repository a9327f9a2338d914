package statestore

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps snapshots in process memory. It backs tests and is the
// fallback when no redis is configured; state does not survive a restart.
type MemoryStore struct {
	notifier

	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore builds an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

// Load unmarshals the namespace blob into dest, reporting whether one existed.
func (m *MemoryStore) Load(ctx context.Context, namespace string, dest any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.blobs[namespace]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Save marshals value and replaces the namespace blob.
func (m *MemoryStore) Save(ctx context.Context, namespace string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.blobs[namespace] = raw
	m.mu.Unlock()

	m.notify(namespace)
	return nil
}

// Delete drops the namespace blob if present.
func (m *MemoryStore) Delete(ctx context.Context, namespace string) error {
	m.mu.Lock()
	delete(m.blobs, namespace)
	m.mu.Unlock()

	m.notify(namespace)
	return nil
}

// Subscribe registers fn to run after mutations of the namespace.
func (m *MemoryStore) Subscribe(namespace string, fn func()) func() {
	return m.subscribe(namespace, fn)
}
