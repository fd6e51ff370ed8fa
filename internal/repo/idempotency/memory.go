package idempotency_repo

import (
	"context"
	"sync"
	"time"

	"checkout-svc/internal/domain/checkout"
	"checkout-svc/internal/domain/gateway"
)

// MemoryStore is the single-instance fallback when no database is configured.
// Entries expire lazily; dedup does not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	handle    gateway.SessionHandle
	expiresAt time.Time
}

func NewMemoryStore() checkout.Store {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, ref string) (gateway.SessionHandle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[ref]
	if !ok {
		return gateway.SessionHandle{}, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, ref)
		return gateway.SessionHandle{}, false, nil
	}
	return entry.handle, true, nil
}

func (s *MemoryStore) Put(_ context.Context, ref string, handle gateway.SessionHandle, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	// Sweep anything already expired while we hold the lock.
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}

	s.entries[ref] = memoryEntry{handle: handle, expiresAt: now.Add(ttl)}
	return nil
}
