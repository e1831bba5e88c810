package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory. It is used in tests and when
// no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Snapshot
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Snapshot)}
}

// Load returns a copy of the stored snapshot.
func (m *MemoryStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.sessions[key]
	if !ok {
		return nil, nil
	}
	out := copySnapshot(snap)
	return &out, nil
}

// Save stores a copy of snap.
func (m *MemoryStore) Save(ctx context.Context, key string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[key] = copySnapshot(snap)
	return nil
}

func copySnapshot(snap Snapshot) Snapshot {
	out := snap
	out.Items = append(snap.Items[:0:0], snap.Items...)
	out.Delivery = snap.Delivery.Clone()
	return out
}
